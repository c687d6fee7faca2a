package series_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planloop/internal/core/domain"
	"planloop/internal/core/series"
)

func date(t *testing.T, value string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return &d
}

func TestFirstAndLast(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", SeriesID: "s1", DueDate: date(t, "2024-01-05")},
		{ID: "b", SeriesID: "s1", DueDate: date(t, "2024-01-01")},
		{ID: "c", SeriesID: "s1", DueDate: date(t, "2024-01-03")},
		{ID: "d", SeriesID: "s2", DueDate: date(t, "2023-12-01")},
	}

	first, ok := series.First(tasks, "s1")
	require.True(t, ok)
	require.Equal(t, "b", first.ID)

	last, ok := series.Last(tasks, "s1")
	require.True(t, ok)
	require.Equal(t, "a", last.ID)
}

func TestFirstAndLast_SkipUndatedAndMissing(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", SeriesID: "s1"},
		{ID: "b", SeriesID: "s1", DueDate: date(t, "2024-01-02")},
	}

	first, ok := series.First(tasks, "s1")
	require.True(t, ok)
	require.Equal(t, "b", first.ID)

	_, ok = series.Last(tasks, "missing")
	require.False(t, ok)

	_, ok = series.First([]domain.Task{{ID: "a", SeriesID: "s1"}}, "s1")
	require.False(t, ok)
}

func TestRemovable(t *testing.T) {
	today := *date(t, "2024-01-10")
	tasks := []domain.Task{
		{ID: "overdue-open", SeriesID: "s1", DueDate: date(t, "2024-01-09")},
		{ID: "overdue-done", SeriesID: "s1", DueDate: date(t, "2024-01-09"), Completed: true},
		{ID: "due-today", SeriesID: "s1", DueDate: date(t, "2024-01-10"), Completed: true},
		{ID: "due-tomorrow", SeriesID: "s1", DueDate: date(t, "2024-01-11")},
		{ID: "undated", SeriesID: "s1"},
		{ID: "other-series", SeriesID: "s2", DueDate: date(t, "2024-01-11")},
	}

	got := series.Removable(tasks, "s1", today)
	require.Equal(t, []string{"overdue-open", "due-today", "due-tomorrow"}, series.IDs(got))
}

func TestMembers(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", SeriesID: "s1"},
		{ID: "b"},
		{ID: "c", SeriesID: "s1"},
	}
	require.Equal(t, []string{"a", "c"}, series.IDs(series.Members(tasks, "s1")))
	require.Nil(t, series.Members(tasks, ""))
}
