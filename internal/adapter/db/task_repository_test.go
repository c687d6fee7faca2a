package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planloop/internal/core/domain"
)

func TestMapTaskRow_DueDateStaysCalendarDay(t *testing.T) {
	row := taskRow{
		ID:        "t1",
		Title:     "pay rent",
		DueDate:   sql.NullString{String: "2024-01-31", Valid: true},
		Subtasks:  []byte(`[{"id":"a","text":"transfer","done":true}]`),
		Tags:      []byte(`["home"]`),
		CreatedAt: time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC),
	}

	task, err := mapTaskRowToDomainTask(row)
	require.NoError(t, err)
	require.Equal(t, "2024-01-31", task.DueDate.String())
	require.Equal(t, []string{"home"}, task.Tags)
	require.Len(t, task.Subtasks, 1)
	require.True(t, task.Subtasks[0].Done)
}

func TestMapTaskRow_NullColumns(t *testing.T) {
	row := taskRow{ID: "t2", Title: "someday", Recurrence: "none"}

	task, err := mapTaskRowToDomainTask(row)
	require.NoError(t, err)
	require.Nil(t, task.DueDate)
	require.Empty(t, task.SeriesID)
	require.Empty(t, task.CustomUnit)
}

func TestMapDomainTask_SeriesFields(t *testing.T) {
	due := domain.NewDate(2024, time.March, 15)
	task := domain.Task{
		ID:             "t3",
		Title:          "review",
		DueDate:        &due,
		Recurrence:     domain.RecurrenceCustom,
		CustomInterval: 2,
		CustomUnit:     domain.RecurrenceWeekly,
		SeriesID:       "s1",
		IsLastInstance: true,
		AutoRenew:      true,
	}

	row, err := mapDomainTaskToRow(task)
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", row.DueDate.String)
	require.Equal(t, "custom", row.Recurrence)
	require.Equal(t, "weekly", row.CustomUnit.String)
	require.Equal(t, "s1", row.SeriesID.String)
	require.True(t, row.IsLastInstance)
}

func TestMapDomainTask_EmptyRecurrenceDefaultsToNone(t *testing.T) {
	row, err := mapDomainTaskToRow(domain.Task{ID: "t4", Title: "plain"})
	require.NoError(t, err)
	require.Equal(t, "none", row.Recurrence)
	require.False(t, row.DueDate.Valid)
}
