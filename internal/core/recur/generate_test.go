package recur_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planloop/internal/core/domain"
	"planloop/internal/core/recur"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestInstances_DegradesToEmpty(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	template := domain.Task{Title: "water plants", Recurrence: domain.RecurrenceDaily}

	require.Empty(t, recur.Instances(domain.Task{Title: "no rule"}, date(t, "2024-01-01"), "s1", 5, now, sequentialIDs()))
	require.Empty(t, recur.Instances(template, domain.Date{}, "s1", 5, now, sequentialIDs()))
	require.Empty(t, recur.Instances(template, date(t, "2024-01-01"), "", 5, now, sequentialIDs()))
	require.Empty(t, recur.Instances(template, date(t, "2024-01-01"), "s1", 0, now, sequentialIDs()))
}

func TestInstances_BatchShape(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	template := domain.Task{
		Title:      "weekly review",
		Tags:       []string{"Work", " work ", "Focus"},
		Recurrence: domain.RecurrenceWeekly,
	}

	got := recur.Instances(template, date(t, "2024-01-05"), "series-1", 5, now, sequentialIDs())
	require.Len(t, got, 5)

	for i, task := range got {
		require.Equal(t, "series-1", task.SeriesID, "index %d", i)
		require.Equal(t, "weekly review", task.Title)
		require.False(t, task.Completed)
		require.True(t, task.AutoRenew)
		require.Equal(t, []string{"work", "focus"}, task.Tags)
		require.Equal(t, now, task.CreatedAt)
		require.Equal(t, now, task.UpdatedAt)
		if i > 0 {
			require.True(t, got[i-1].DueDate.Before(*task.DueDate))
		}
	}

	// Exactly the final occurrence carries the last-instance flag.
	for i, task := range got {
		require.Equal(t, i == len(got)-1, task.IsLastInstance, "index %d", i)
	}
}

func TestInstances_SubtaskCompletionRules(t *testing.T) {
	now := time.Now()
	template := domain.Task{
		Title:      "pay rent",
		Recurrence: domain.RecurrenceMonthly,
		Subtasks: []domain.Subtask{
			{ID: "a", Text: "check balance", Done: true},
			{ID: "b", Text: "transfer", Done: false},
		},
	}

	got := recur.Instances(template, date(t, "2024-02-01"), "series-2", 3, now, sequentialIDs())
	require.Len(t, got, 3)

	// The first occurrence keeps the template state verbatim.
	require.True(t, got[0].Subtasks[0].Done)
	require.False(t, got[0].Subtasks[1].Done)

	// Every later occurrence starts unchecked.
	for _, task := range got[1:] {
		for _, sub := range task.Subtasks {
			require.False(t, sub.Done)
		}
	}
}

func TestInstances_CustomRule(t *testing.T) {
	now := time.Now()
	template := domain.Task{
		Title:          "deep clean",
		Recurrence:     domain.RecurrenceCustom,
		CustomInterval: 3,
		CustomUnit:     domain.RecurrenceWeekly,
	}

	got := recur.Instances(template, date(t, "2024-01-01"), "series-3", 4, now, sequentialIDs())
	require.Len(t, got, 4)
	require.Equal(t, "2024-01-01", got[0].DueDate.String())
	require.Equal(t, "2024-01-22", got[1].DueDate.String())
	require.Equal(t, "2024-02-12", got[2].DueDate.String())
}

func TestInstances_CustomRuleWithoutUnitDegrades(t *testing.T) {
	template := domain.Task{
		Title:          "broken",
		Recurrence:     domain.RecurrenceCustom,
		CustomInterval: 2,
	}
	require.Empty(t, recur.Instances(template, date(t, "2024-01-01"), "series-4", 4, time.Now(), sequentialIDs()))
}

func TestInstances_InheritsCreatedAt(t *testing.T) {
	created := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	template := domain.Task{Title: "standup", Recurrence: domain.RecurrenceDaily, CreatedAt: created}

	got := recur.Instances(template, date(t, "2024-01-02"), "series-5", 2, now, sequentialIDs())
	require.Len(t, got, 2)
	require.Equal(t, created, got[0].CreatedAt)
	require.Equal(t, now, got[0].UpdatedAt)
}
