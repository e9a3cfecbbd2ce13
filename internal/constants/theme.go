package constants

import apperrors "task-manager.com/task-manager/internal/errors"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", apperrors.ErrInvalidTheme
	}
	return t, nil
}
