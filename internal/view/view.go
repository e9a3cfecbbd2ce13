// Package view derives the ordered task lists a client renders from a user's
// raw task collection. Everything here is a pure function of its inputs.
package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
)

// Params selects and orders the tasks of a view.
type Params struct {
	// Category keeps only tasks of one category, or all of them.
	Category constants.CategoryFilter
	// Search is matched case-insensitively as a substring of the title,
	// category or priority. Empty keeps every task.
	Search string
	// Sort is applied after the pinned-first rule.
	Sort constants.SortKey
	// Locale drives title collation. The zero tag means English.
	Locale language.Tag
}

func (p Params) Validate() error {
	if !p.Category.Valid() {
		return apperrors.ErrInvalidCategoryFilter
	}
	if !p.Sort.Valid() {
		return apperrors.ErrInvalidSortKey
	}
	return nil
}

// Result holds the filtered tasks split by completion. Both slices are
// copies of the input records and never nil.
type Result struct {
	Active    []model.Task `json:"active"`
	Completed []model.Task `json:"completed"`
}

// Len is the number of tasks that survived filtering.
func (r Result) Len() int {
	return len(r.Active) + len(r.Completed)
}

// Compute filters tasks by category and search query, partitions them into
// active and completed, and stable-sorts each partition pinned-first.
func Compute(tasks []model.Task, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	match := newMatcher(p.Search)
	res := Result{
		Active:    []model.Task{},
		Completed: []model.Task{},
	}

	for _, t := range tasks {
		if !p.Category.Matches(t.Category) || !match(t) {
			continue
		}
		if t.Completed {
			res.Completed = append(res.Completed, t)
		} else {
			res.Active = append(res.Active, t)
		}
	}

	order := comparator(p)
	slices.SortStableFunc(res.Active, order)
	slices.SortStableFunc(res.Completed, order)

	return res, nil
}

func newMatcher(query string) func(model.Task) bool {
	if query == "" {
		return func(model.Task) bool { return true }
	}

	fold := cases.Fold()
	needle := fold.String(query)

	return func(t model.Task) bool {
		for _, field := range []string{t.Title, string(t.Category), string(t.Priority)} {
			if strings.Contains(fold.String(field), needle) {
				return true
			}
		}
		return false
	}
}

func comparator(p Params) func(a, b model.Task) int {
	byKey := keyComparator(p)

	return func(a, b model.Task) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return byKey(a, b)
	}
}

func keyComparator(p Params) func(a, b model.Task) int {
	switch p.Sort {
	case constants.SortPriority:
		return func(a, b model.Task) int {
			return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
		}
	case constants.SortDate:
		return compareDates
	default:
		// Collators keep internal buffers, so each view builds its own.
		col := collate.New(locale(p.Locale))
		return func(a, b model.Task) int {
			return col.CompareString(a.Title, b.Title)
		}
	}
}

// compareDates orders by calendar day with undated tasks after dated ones.
func compareDates(a, b model.Task) int {
	switch {
	case !a.HasDate() && !b.HasDate():
		return 0
	case !a.HasDate():
		return 1
	case !b.HasDate():
		return -1
	}
	return dueDay(a).Compare(dueDay(b))
}

// dueDay is the UTC calendar day of a dated task. Sorting and the calendar
// view both read dates through it.
func dueDay(t model.Task) time.Time {
	return model.CivilDate(t.Date.UTC())
}

func locale(tag language.Tag) language.Tag {
	if tag == language.Und {
		return language.English
	}
	return tag
}
