// Package series answers membership questions over the task collection:
// which occurrence opens or closes a series, and which occurrences a
// regeneration or delete may replace.
package series

import "planloop/internal/core/domain"

// Members returns every occurrence sharing the series identifier.
func Members(tasks []domain.Task, seriesID string) []domain.Task {
	if seriesID == "" {
		return nil
	}
	var out []domain.Task
	for _, t := range tasks {
		if t.SeriesID == seriesID {
			out = append(out, t)
		}
	}
	return out
}

// First returns the series occurrence with the earliest due date.
// Occurrences without a due date are never candidates; ok is false when
// the series has no dated member.
func First(tasks []domain.Task, seriesID string) (domain.Task, bool) {
	return pick(tasks, seriesID, func(candidate, best domain.Date) bool {
		return candidate.Before(best)
	})
}

// Last is the symmetric counterpart of First: the latest dated occurrence.
func Last(tasks []domain.Task, seriesID string) (domain.Task, bool) {
	return pick(tasks, seriesID, func(candidate, best domain.Date) bool {
		return candidate.After(best)
	})
}

func pick(tasks []domain.Task, seriesID string, better func(candidate, best domain.Date) bool) (domain.Task, bool) {
	var found domain.Task
	ok := false
	for _, t := range tasks {
		if t.SeriesID != seriesID || t.DueDate == nil {
			continue
		}
		if !ok || better(*t.DueDate, *found.DueDate) {
			found = t
			ok = true
		}
	}
	return found, ok
}

// Removable classifies which series occurrences a regeneration may
// replace: anything due on or after today regardless of completion, and
// anything overdue that is still incomplete. Completed occurrences in
// the past are history and are never removable, and occurrences without
// a due date stay out of regeneration scope entirely.
func Removable(tasks []domain.Task, seriesID string, today domain.Date) []domain.Task {
	if seriesID == "" {
		return nil
	}
	var out []domain.Task
	for _, t := range tasks {
		if t.SeriesID == seriesID && IsRemovable(t, today) {
			out = append(out, t)
		}
	}
	return out
}

// IsRemovable applies the Removable rule to a single occurrence.
func IsRemovable(t domain.Task, today domain.Date) bool {
	if t.DueDate == nil {
		return false
	}
	if !t.DueDate.Before(today) {
		return true
	}
	return !t.Completed
}

// IDs collects task identifiers, preserving order.
func IDs(tasks []domain.Task) []string {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
