package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user together with their initial preferences.
func (r *UserRepository) Create(ctx context.Context, user *model.User, prefs *model.Preferences) error {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	prefs.UserID = user.ID
	prefs.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrEmailTaken
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrEmailTaken
			}
			return err
		}

		return tx.Create(prefs).Error
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update saves name, email, avatar and password hash. A changed email must
// not collide with another account.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.User{}).
			Where("email = ? AND id <> ?", user.Email, user.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrEmailTaken
		}

		res := tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":          user.Name,
				"email":         user.Email,
				"avatar_url":    user.AvatarURL,
				"password_hash": user.PasswordHash,
				"updated_at":    user.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
}
