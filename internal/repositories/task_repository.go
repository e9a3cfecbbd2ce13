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

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create assigns a fresh id and version to task and persists it.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByUser returns the user's tasks oldest first, so views built from the
// result break ties deterministically.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&tasks).Error
	return tasks, err
}

// Update writes every mutable field if the stored version still matches.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ? AND version = ?", task.ID, task.UserID, task.Version).
		Updates(map[string]interface{}{
			"title":             task.Title,
			"completed":         task.Completed,
			"pinned":            task.Pinned,
			"category":          task.Category,
			"priority":          task.Priority,
			"date":              task.Date,
			"notifications":     task.Notifications,
			"notification_time": task.NotificationTime,
			"updated_at":        now,
			"version":           gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Task{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}
