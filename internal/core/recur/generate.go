package recur

import (
	"time"

	"planloop/internal/core/domain"
)

// DefaultBatchSize is the number of occurrences materialized per
// generation call.
const DefaultBatchSize = 50

// Instances materializes a batch of occurrences for one series.
//
// The template carries title, tags, subtasks and the recurrence rule;
// start is the first occurrence's due date. A missing rule, zero start
// date, empty series id or non-positive count degrades to an empty
// result rather than an error. When the result is non-empty its length
// equals count, every occurrence shares seriesID, due dates strictly
// increase and exactly the final occurrence is flagged last-instance.
func Instances(template domain.Task, start domain.Date, seriesID string, count int, now time.Time, newID func() string) []domain.Task {
	if !template.Recurrence.IsSet() || start.IsZero() || seriesID == "" || count <= 0 {
		return nil
	}

	unit, multiplier := template.Recurrence, 1
	if template.Recurrence == domain.RecurrenceCustom {
		unit = template.CustomUnit
		multiplier = template.CustomInterval
		if multiplier < 1 {
			multiplier = 1
		}
	}

	dates := Sequence(start, unit, count, multiplier)
	if len(dates) == 0 {
		return nil
	}

	createdAt := template.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	tags := domain.NormalizeTags(template.Tags)

	tasks := make([]domain.Task, 0, len(dates))
	for i, due := range dates {
		due := due
		tasks = append(tasks, domain.Task{
			ID:      newID(),
			Title:   template.Title,
			DueDate: &due,
			// The first occurrence keeps the template's subtask state;
			// later ones start with everything unchecked.
			Subtasks:       domain.CloneSubtasks(template.Subtasks, i > 0),
			Tags:           append([]string(nil), tags...),
			Recurrence:     template.Recurrence,
			CustomInterval: template.CustomInterval,
			CustomUnit:     template.CustomUnit,
			SeriesID:       seriesID,
			IsLastInstance: i == len(dates)-1,
			AutoRenew:      true,
			CreatedAt:      createdAt,
			UpdatedAt:      now,
		})
	}
	return tasks
}
