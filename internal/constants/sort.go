package constants

import apperrors "task-manager.com/task-manager/internal/errors"

type SortKey string

const (
	SortPriority SortKey = "priority"
	SortDate     SortKey = "date"
	SortTitle    SortKey = "title"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortPriority, SortDate, SortTitle:
		return true
	}
	return false
}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.Valid() {
		return "", apperrors.ErrInvalidSortKey
	}
	return k, nil
}
