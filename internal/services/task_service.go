package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"task-manager.com/task-manager/internal/calendar"
	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
	"task-manager.com/task-manager/internal/realtime"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/timezone"
	"task-manager.com/task-manager/internal/view"
)

// toggles re-read the task when a concurrent writer bumped its version.
const maxToggleAttempts = 3

// Publisher delivers change events to a user's live connections.
type Publisher interface {
	Publish(userID string, event realtime.Event)
}

type TaskService struct {
	repo      *repository.TaskRepository
	prefs     *repository.PreferencesRepository
	publisher Publisher
	now       func() time.Time
}

func NewTaskService(
	repo *repository.TaskRepository,
	prefs *repository.PreferencesRepository,
	publisher Publisher,
) *TaskService {
	return &TaskService{
		repo:      repo,
		prefs:     prefs,
		publisher: publisher,
		now:       time.Now,
	}
}

type CreateTaskInput struct {
	Title            string
	Category         constants.Category
	Priority         constants.Priority
	Pinned           bool
	Date             *time.Time
	Notifications    bool
	NotificationTime *time.Time
}

// TaskPatch changes only the fields that are set. ClearDate removes the due
// date. When Version is set the update fails with ErrOptimisticLock if the
// stored task has moved on.
type TaskPatch struct {
	Title     *string
	Category  *constants.Category
	Priority  *constants.Priority
	Completed *bool
	Pinned    *bool
	Date      *time.Time
	ClearDate bool
	Version   *uint
}

// ViewResult is a computed view together with the sort key that was applied.
type ViewResult struct {
	view.Result
	Sort     constants.SortKey        `json:"sort"`
	Category constants.CategoryFilter `json:"category"`
	Count    int                      `json:"count"`
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	category := in.Category
	if category == "" {
		category = constants.CategoryWork
	}
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	priority := in.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}

	task := &model.Task{
		UserID:           userID,
		Title:            title,
		Category:         category,
		Priority:         priority,
		Pinned:           in.Pinned,
		Date:             civil(in.Date),
		Notifications:    in.Notifications,
		NotificationTime: utc(in.NotificationTime),
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.notify(userID, "created", created.ID)
	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	return s.repo.FindByID(ctx, userID, id)
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, patch TaskPatch) (*model.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}

	attempts := maxToggleAttempts
	if patch.Version != nil {
		attempts = 1
	}

	return s.mutate(ctx, userID, id, attempts, func(task *model.Task) {
		if patch.Version != nil {
			task.Version = *patch.Version
		}
		if patch.Title != nil {
			task.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Category != nil {
			task.Category = *patch.Category
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}
		if patch.Pinned != nil {
			task.Pinned = *patch.Pinned
		}
		if patch.ClearDate {
			task.Date = nil
		} else if patch.Date != nil {
			task.Date = civil(patch.Date)
		}
	})
}

func (s *TaskService) ToggleComplete(ctx context.Context, userID, id string) (*model.Task, error) {
	return s.mutate(ctx, userID, id, maxToggleAttempts, func(task *model.Task) {
		task.Completed = !task.Completed
	})
}

func (s *TaskService) TogglePin(ctx context.Context, userID, id string) (*model.Task, error) {
	return s.mutate(ctx, userID, id, maxToggleAttempts, func(task *model.Task) {
		task.Pinned = !task.Pinned
	})
}

// SetNotifications switches the reminder on or off. Enabling it without a
// time keeps the previously stored time.
func (s *TaskService) SetNotifications(
	ctx context.Context,
	userID, id string,
	enabled bool,
	at *time.Time,
) (*model.Task, error) {
	if enabled && at == nil {
		task, err := s.GetTask(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if task.NotificationTime == nil {
			return nil, apperrors.ErrInvalidNotificationTime
		}
	}

	return s.mutate(ctx, userID, id, maxToggleAttempts, func(task *model.Task) {
		task.Notifications = enabled
		if at != nil {
			task.NotificationTime = utc(at)
		}
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.notify(userID, "deleted", id)
	return nil
}

// View computes the filtered, partitioned and ordered task lists. An empty
// sort key falls back to the user's preference and an empty category to all.
func (s *TaskService) View(ctx context.Context, userID string, p view.Params) (*ViewResult, error) {
	if p.Category == "" {
		p.Category = constants.FilterAll
	}
	if p.Sort == "" {
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		p.Sort = prefs.DefaultSort
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := view.Compute(tasks, p)
	if err != nil {
		return nil, err
	}

	return &ViewResult{
		Result:   result,
		Sort:     p.Sort,
		Category: p.Category,
		Count:    result.Len(),
	}, nil
}

// TasksOn lists the tasks due on day and returns the day it used. A nil day
// means today in the user's timezone.
func (s *TaskService) TasksOn(ctx context.Context, userID string, day *time.Time) (time.Time, []model.Task, error) {
	var target time.Time
	if day != nil {
		target = *day
	} else {
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			return time.Time{}, nil, err
		}
		target = s.now().In(timezone.Location(prefs.TimeZone))
	}

	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return time.Time{}, nil, err
	}
	return model.CivilDate(target), view.OnDate(tasks, target), nil
}

func (s *TaskService) Statistics(ctx context.Context, userID string) (view.Statistics, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return view.Statistics{}, err
	}
	return view.Stats(tasks), nil
}

func (s *TaskService) ExportICS(ctx context.Context, userID, id string) (string, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return calendar.BuildICS(*task, s.now())
}

func (s *TaskService) mutate(
	ctx context.Context,
	userID, id string,
	attempts int,
	apply func(*model.Task),
) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	var err error
	for i := 0; i < attempts; i++ {
		var task *model.Task
		task, err = s.repo.FindByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}

		apply(task)

		err = s.repo.Update(ctx, task)
		if err == nil {
			s.notify(userID, "updated", task.ID)
			return task, nil
		}
		if !errors.Is(err, apperrors.ErrOptimisticLock) {
			return nil, err
		}
	}

	return nil, err
}

func (s *TaskService) notify(userID, action, taskID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(userID, realtime.Event{
		Type: realtime.EventTasksChanged,
		Data: map[string]string{"action": action, "task_id": taskID},
	})
}

func civil(ts *time.Time) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	d := model.CivilDate(*ts)
	return &d
}

func utc(ts *time.Time) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	u := ts.UTC()
	return &u
}
