// Package seed loads demo accounts and tasks from a YAML fixture file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
	"task-manager.com/task-manager/internal/services"
)

type Fixture struct {
	Users []UserFixture `yaml:"users"`
}

type UserFixture struct {
	Name     string        `yaml:"name"`
	Email    string        `yaml:"email"`
	Password string        `yaml:"password"`
	TimeZone string        `yaml:"time_zone"`
	Tasks    []TaskFixture `yaml:"tasks"`
}

type TaskFixture struct {
	Title     string `yaml:"title"`
	Category  string `yaml:"category"`
	Priority  string `yaml:"priority"`
	Date      string `yaml:"date"`
	Pinned    bool   `yaml:"pinned"`
	Completed bool   `yaml:"completed"`
}

func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// Summary counts what Apply created.
type Summary struct {
	Users   int
	Skipped int
	Tasks   int
}

// Apply creates every user in the fixture with their tasks. Users whose email
// is already registered are skipped along with their tasks.
func Apply(
	ctx context.Context,
	f *Fixture,
	auth *services.AuthService,
	tasks *services.TaskService,
) (Summary, error) {
	var sum Summary

	for _, u := range f.Users {
		user, err := auth.SignUp(ctx, services.SignUpInput{
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			TimeZone: u.TimeZone,
		})
		if errors.Is(err, apperrors.ErrEmailTaken) {
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("user %s: %w", u.Email, err)
		}
		sum.Users++

		for _, t := range u.Tasks {
			if err := createTask(ctx, tasks, user.ID, t); err != nil {
				return sum, fmt.Errorf("user %s task %q: %w", u.Email, t.Title, err)
			}
			sum.Tasks++
		}
	}

	return sum, nil
}

func createTask(ctx context.Context, tasks *services.TaskService, userID string, t TaskFixture) error {
	in := services.CreateTaskInput{
		Title:    t.Title,
		Category: constants.Category(t.Category),
		Priority: constants.Priority(t.Priority),
		Pinned:   t.Pinned,
	}
	if t.Date != "" {
		d, err := model.ParseDate(t.Date)
		if err != nil {
			return err
		}
		in.Date = &d
	}

	task, err := tasks.CreateTask(ctx, userID, in)
	if err != nil {
		return err
	}
	if t.Completed {
		_, err = tasks.ToggleComplete(ctx, userID, task.ID)
	}
	return err
}
