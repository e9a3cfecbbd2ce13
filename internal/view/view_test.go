package view

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
)

func day(y int, m time.Month, d int) *time.Time {
	ts := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &ts
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func params(c constants.CategoryFilter, search string, sort constants.SortKey) Params {
	return Params{Category: c, Search: search, Sort: sort}
}

func fixture() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Complete project proposal", Pinned: true, Category: constants.CategoryWork, Priority: constants.PriorityMedium, Date: day(2026, 10, 20)},
		{ID: "2", Title: "Buy groceries", Category: constants.CategoryPersonal, Priority: constants.PriorityLow, Date: day(2026, 10, 18)},
		{ID: "3", Title: "Send weekly report", Completed: true, Category: constants.CategoryWork, Priority: constants.PriorityHigh, Date: day(2026, 10, 17)},
		{ID: "4", Title: "Call plumber", Category: constants.CategoryPersonal, Priority: constants.PriorityHigh},
		{ID: "5", Title: "Archive invoices", Completed: true, Pinned: true, Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "6", Title: "Review pull requests", Category: constants.CategoryWork, Priority: constants.PriorityHigh, Date: day(2026, 10, 18)},
	}
}

func TestCompute_PinnedFirstUnderPriority(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "A", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "2", Title: "B", Pinned: true, Category: constants.CategoryWork, Priority: constants.PriorityLow},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "", constants.SortPriority))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, titles(res.Active))
	assert.Empty(t, res.Completed)
}

func TestCompute_PinnedDominatesTitleOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "A", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "2", Title: "B", Pinned: true, Category: constants.CategoryWork, Priority: constants.PriorityLow},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "", constants.SortTitle))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, titles(res.Active))
}

func TestCompute_CategoryFilterPersonal(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "Work thing", Category: constants.CategoryWork, Priority: constants.PriorityMedium},
		{ID: "2", Title: "Home thing", Category: constants.CategoryPersonal, Priority: constants.PriorityMedium},
	}

	res, err := Compute(tasks, params(constants.FilterPersonal, "", constants.SortPriority))
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, ids(res.Active))
	assert.Empty(t, res.Completed)
}

func TestCompute_SearchSubstring(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "Send weekly report", Category: constants.CategoryWork, Priority: constants.PriorityMedium},
		{ID: "2", Title: "Buy groceries", Category: constants.CategoryPersonal, Priority: constants.PriorityMedium},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "rep", constants.SortTitle))
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, ids(res.Active))
}

func TestCompute_SearchMatchesCategoryAndPriority(t *testing.T) {
	res, err := Compute(fixture(), params(constants.FilterAll, "personal", constants.SortPriority))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2", "4"}, ids(res.Active))

	res, err = Compute(fixture(), params(constants.FilterAll, "HIGH", constants.SortPriority))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"4", "6"}, ids(res.Active))
	assert.Equal(t, []string{"3"}, ids(res.Completed))
}

func TestCompute_SearchIsCaseInsensitive(t *testing.T) {
	upper, err := Compute(fixture(), params(constants.FilterAll, "WORK", constants.SortTitle))
	require.NoError(t, err)
	lower, err := Compute(fixture(), params(constants.FilterAll, "work", constants.SortTitle))
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	assert.NotZero(t, lower.Len())
}

func TestCompute_PartitionCoversFilteredSetExactlyOnce(t *testing.T) {
	for _, filter := range []constants.CategoryFilter{constants.FilterAll, constants.FilterWork, constants.FilterPersonal} {
		for _, sort := range []constants.SortKey{constants.SortPriority, constants.SortDate, constants.SortTitle} {
			t.Run(fmt.Sprintf("%s/%s", filter, sort), func(t *testing.T) {
				res, err := Compute(fixture(), params(filter, "", sort))
				require.NoError(t, err)

				var expected []string
				for _, task := range fixture() {
					if filter.Matches(task.Category) {
						expected = append(expected, task.ID)
					}
				}

				seen := map[string]int{}
				for _, task := range res.Active {
					assert.False(t, task.Completed)
					seen[task.ID]++
				}
				for _, task := range res.Completed {
					assert.True(t, task.Completed)
					seen[task.ID]++
				}

				assert.Len(t, seen, len(expected))
				for _, id := range expected {
					assert.Equal(t, 1, seen[id], "task %s", id)
				}
			})
		}
	}
}

func TestCompute_PinnedPrecedeUnpinnedForEverySortKey(t *testing.T) {
	for _, sort := range []constants.SortKey{constants.SortPriority, constants.SortDate, constants.SortTitle} {
		res, err := Compute(fixture(), params(constants.FilterAll, "", sort))
		require.NoError(t, err)

		for _, part := range [][]model.Task{res.Active, res.Completed} {
			unpinnedSeen := false
			for _, task := range part {
				if !task.Pinned {
					unpinnedSeen = true
					continue
				}
				assert.False(t, unpinnedSeen, "pinned task %s after unpinned under %s", task.ID, sort)
			}
		}
	}
}

func TestCompute_PriorityOrderWithinTier(t *testing.T) {
	res, err := Compute(fixture(), params(constants.FilterAll, "", constants.SortPriority))
	require.NoError(t, err)

	// 1 is pinned; then high (4, 6 in input order), then low (2).
	assert.Equal(t, []string{"1", "4", "6", "2"}, ids(res.Active))
	assert.Equal(t, []string{"5", "3"}, ids(res.Completed))
}

func TestCompute_TitleOrderWithinTier(t *testing.T) {
	res, err := Compute(fixture(), params(constants.FilterAll, "", constants.SortTitle))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Complete project proposal",
		"Buy groceries",
		"Call plumber",
		"Review pull requests",
	}, titles(res.Active))
}

func TestCompute_TitleUsesCollation(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "zebra", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "2", Title: "Äpfel kaufen", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "3", Title: "apple", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "4", Title: "Banana", Category: constants.CategoryWork, Priority: constants.PriorityLow},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "", constants.SortTitle))
	require.NoError(t, err)

	// Byte order would put "Banana" first and "Äpfel" last.
	assert.Equal(t, []string{"2", "3", "4", "1"}, ids(res.Active))
}

func TestCompute_UndatedTasksSortAfterDated(t *testing.T) {
	tasks := []model.Task{
		{ID: "u1", Title: "no date one", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "d2", Title: "later", Category: constants.CategoryWork, Priority: constants.PriorityLow, Date: day(2026, 11, 2)},
		{ID: "u2", Title: "no date two", Category: constants.CategoryWork, Priority: constants.PriorityLow},
		{ID: "d1", Title: "sooner", Category: constants.CategoryWork, Priority: constants.PriorityLow, Date: day(2026, 10, 30)},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "", constants.SortDate))
	require.NoError(t, err)

	assert.Equal(t, []string{"d1", "d2", "u1", "u2"}, ids(res.Active))
}

func TestCompute_DateIgnoresTimeOfDay(t *testing.T) {
	evening := time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC)
	morning := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "evening", Category: constants.CategoryWork, Priority: constants.PriorityLow, Date: &evening},
		{ID: "morning", Category: constants.CategoryWork, Priority: constants.PriorityLow, Date: &morning},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "", constants.SortDate))
	require.NoError(t, err)

	assert.Equal(t, []string{"evening", "morning"}, ids(res.Active))
}

func TestCompute_IsIdempotentAndDoesNotMutateInput(t *testing.T) {
	tasks := fixture()
	before := fixture()
	p := params(constants.FilterAll, "", constants.SortDate)

	first, err := Compute(tasks, p)
	require.NoError(t, err)
	second, err := Compute(tasks, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, tasks)
}

func TestCompute_EmptyInput(t *testing.T) {
	res, err := Compute(nil, params(constants.FilterAll, "anything", constants.SortTitle))
	require.NoError(t, err)

	assert.NotNil(t, res.Active)
	assert.NotNil(t, res.Completed)
	assert.Zero(t, res.Len())
}

func TestCompute_RejectsOutOfEnumerationParams(t *testing.T) {
	_, err := Compute(fixture(), params("home", "", constants.SortTitle))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategoryFilter)

	_, err = Compute(fixture(), params(constants.FilterAll, "", "created_at"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidSortKey)

	_, err = Compute(fixture(), Params{})
	assert.Error(t, err)
}

func TestCompute_ConcurrentCalls(t *testing.T) {
	tasks := fixture()
	want, err := Compute(tasks, params(constants.FilterAll, "", constants.SortTitle))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan Result, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := Compute(tasks, params(constants.FilterAll, "", constants.SortTitle))
			results <- res
		}()
	}
	wg.Wait()
	close(results)

	for res := range results {
		assert.Equal(t, want, res)
	}
}

func TestCompute_DateAndCalendarAgreeOnTheDueDay(t *testing.T) {
	// 00:30 in UTC+2 on the 19th is still the 18th in UTC.
	offset := time.Date(2026, 10, 19, 0, 30, 0, 0, time.FixedZone("EET", 2*3600))
	noon := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "offset", Category: constants.CategoryWork, Priority: constants.PriorityLow, Date: &offset},
		{ID: "noon", Category: constants.CategoryWork, Priority: constants.PriorityLow, Date: &noon},
	}

	res, err := Compute(tasks, params(constants.FilterAll, "", constants.SortDate))
	require.NoError(t, err)

	// Same due day, so the stable sort keeps input order.
	assert.Equal(t, []string{"offset", "noon"}, ids(res.Active))
	assert.Equal(t, []string{"offset", "noon"}, ids(OnDate(tasks, *day(2026, 10, 18))))
	assert.Empty(t, OnDate(tasks, *day(2026, 10, 19)))
}
