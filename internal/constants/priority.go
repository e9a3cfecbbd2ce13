package constants

import apperrors "task-manager.com/task-manager/internal/errors"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank orders priorities high < medium < low. Unknown values rank last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", apperrors.ErrInvalidPriority
	}
	return p, nil
}
