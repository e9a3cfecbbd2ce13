package view

import (
	"time"

	model "task-manager.com/task-manager/internal/models"
)

// OnDate returns the tasks due on the calendar day of day, in input order.
// The day is read in its own location; task dates are civil UTC dates.
func OnDate(tasks []model.Task, day time.Time) []model.Task {
	target := model.CivilDate(day)
	out := []model.Task{}

	for _, t := range tasks {
		if t.HasDate() && dueDay(t).Equal(target) {
			out = append(out, t)
		}
	}

	return out
}
