package dto

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

type PreferencesRequest struct {
	Theme         *string `json:"theme"`
	DefaultSort   *string `json:"default_sort"`
	TimeZone      *string `json:"time_zone"`
	Notifications *bool   `json:"notifications"`
}
