package mapper

import (
	"time"

	"planloop/internal/adapter/http/dto"
	"planloop/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Completed:      task.Completed,
		Tags:           task.Tags,
		Recurrence:     string(task.Recurrence),
		CustomInterval: task.CustomInterval,
		IsLastInstance: task.IsLastInstance,
		AutoRenew:      task.AutoRenew,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
	}
	if item.Recurrence == "" {
		item.Recurrence = string(domain.RecurrenceNone)
	}

	if task.DueDate != nil {
		value := task.DueDate.String()
		item.DueDate = &value
	}
	if task.CustomUnit != "" {
		value := string(task.CustomUnit)
		item.CustomUnit = &value
	}
	if task.SeriesID != "" {
		value := task.SeriesID
		item.SeriesID = &value
	}

	for _, sub := range task.Subtasks {
		item.Subtasks = append(item.Subtasks, dto.SubtaskItem{ID: sub.ID, Text: sub.Text, Done: sub.Done})
	}

	return item
}

func ToSubtasks(items []dto.SubtaskItem) []domain.Subtask {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.Subtask, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Subtask{ID: item.ID, Text: item.Text, Done: item.Done})
	}
	return out
}
