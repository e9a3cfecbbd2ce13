package constants

import apperrors "task-manager.com/task-manager/internal/errors"

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
)

func (c Category) Valid() bool {
	return c == CategoryWork || c == CategoryPersonal
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", apperrors.ErrInvalidCategory
	}
	return c, nil
}

// CategoryFilter selects which categories a view keeps.
type CategoryFilter string

const (
	FilterAll      CategoryFilter = "all"
	FilterWork     CategoryFilter = CategoryFilter(CategoryWork)
	FilterPersonal CategoryFilter = CategoryFilter(CategoryPersonal)
)

func (f CategoryFilter) Valid() bool {
	return f == FilterAll || f == FilterWork || f == FilterPersonal
}

// Matches reports whether a task in category c passes the filter.
func (f CategoryFilter) Matches(c Category) bool {
	return f == FilterAll || Category(f) == c
}

func ParseCategoryFilter(s string) (CategoryFilter, error) {
	f := CategoryFilter(s)
	if !f.Valid() {
		return "", apperrors.ErrInvalidCategoryFilter
	}
	return f, nil
}
