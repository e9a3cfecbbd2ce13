package view

import (
	"task-manager.com/task-manager/internal/constants"
	model "task-manager.com/task-manager/internal/models"
)

// Statistics summarises a task collection. Percentages are in [0, 100] and
// are zero for an empty collection.
type Statistics struct {
	Total          int                        `json:"total"`
	Completed      int                        `json:"completed"`
	CompletionRate float64                    `json:"completion_rate"`
	WorkShare      float64                    `json:"work_share"`
	PersonalShare  float64                    `json:"personal_share"`
	Priorities     map[constants.Priority]int `json:"priorities"`
}

func Stats(tasks []model.Task) Statistics {
	s := Statistics{
		Total: len(tasks),
		Priorities: map[constants.Priority]int{
			constants.PriorityHigh:   0,
			constants.PriorityMedium: 0,
			constants.PriorityLow:    0,
		},
	}

	var work, personal int
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		switch t.Category {
		case constants.CategoryWork:
			work++
		case constants.CategoryPersonal:
			personal++
		}
		if t.Priority.Valid() {
			s.Priorities[t.Priority]++
		}
	}

	s.CompletionRate = percent(s.Completed, s.Total)
	s.WorkShare = percent(work, s.Total)
	s.PersonalShare = percent(personal, s.Total)

	return s
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
