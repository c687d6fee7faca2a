package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"planloop/internal/core/domain"
	"planloop/internal/core/recur"
	"planloop/internal/core/series"
)

const confirmSubtaskPropagation = "Apply the subtask changes to the upcoming occurrences in this series?"

// UpdateTask applies a partial edit. Depending on what changed this is
// a full or partial series regeneration, a field propagation across the
// series, or a single-row update; a drag-move intent always takes the
// single-row path.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch, intent domain.UpdateIntent) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, idx := s.find(id)
	if idx < 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	now := s.now()
	updated := applyPatch(cur, patch, now)

	switch {
	case !intent.DragMove && recurrenceChanged(cur, patch) && updated.Recurrence.IsSet() && updated.DueDate != nil:
		return s.regenerate(ctx, cur, updated, intent.Scope)

	case !intent.DragMove && cur.InSeries() && firstInstanceDateChanged(s.tasks, cur, patch, updated):
		// Only the opening occurrence's date moved: rebuild the series
		// from the new date, same rule, same identifier.
		return s.regenerate(ctx, cur, updated, domain.EditScopeThisAndFollowing)

	case !intent.DragMove && cur.InSeries():
		return s.propagate(ctx, cur, updated, patch)

	default:
		next := s.snapshot()
		next[idx] = updated
		if err := s.commit(ctx, next, []domain.Task{updated}, nil); err != nil {
			return domain.Task{}, err
		}
		return updated, nil
	}
}

// regenerate replaces part or all of a series with a fresh batch built
// from the edited occurrence's settings.
func (s *TaskService) regenerate(ctx context.Context, cur, updated domain.Task, scope domain.EditScope) (domain.Task, error) {
	if scope == "" {
		scope = domain.EditScopeThisAndFollowing
	}

	var (
		removed  []domain.Task
		seriesID string
		start    = *updated.DueDate
	)
	switch {
	case !cur.InSeries():
		// A standalone task gained a rule: it becomes the template of a
		// brand new series and its own row is replaced by the batch.
		removed = []domain.Task{cur}
		seriesID = s.newID()
	case scope == domain.EditScopeAll:
		removed = series.Members(s.tasks, cur.SeriesID)
		seriesID = s.newID()
		if first, ok := series.First(s.tasks, cur.SeriesID); ok {
			start = *first.DueDate
		}
	default:
		removed = series.Removable(s.tasks, cur.SeriesID, s.today())
		seriesID = cur.SeriesID
	}

	batch := recur.Instances(updated, start, seriesID, recur.DefaultBatchSize, s.now(), s.newID)
	if len(batch) == 0 {
		// Degraded inputs (e.g. custom rule without a base unit): keep
		// the single-row edit rather than destroying the series.
		zap.L().Warn("regeneration produced no occurrences, applying single-row update",
			zap.String("task_id", cur.ID), zap.String("series_id", cur.SeriesID))
		next := s.snapshot()
		for i := range next {
			if next[i].ID == cur.ID {
				next[i] = updated
			}
		}
		if err := s.commit(ctx, next, []domain.Task{updated}, nil); err != nil {
			return domain.Task{}, err
		}
		return updated, nil
	}

	next := without(s.snapshot(), series.IDs(removed))
	next = append(next, batch...)
	if err := s.commit(ctx, next, batch, series.IDs(removed)); err != nil {
		return domain.Task{}, err
	}
	return batch[0], nil
}

// propagate copies the shared-field parts of the edit onto every
// future-or-open sibling; the edited row itself takes the full patch.
// Subtask changes only travel when the user confirms, and propagated
// subtasks always start unchecked.
func (s *TaskService) propagate(ctx context.Context, cur, updated domain.Task, patch domain.TaskPatch) (domain.Task, error) {
	propagateSubtasks := false
	if patch.SubtasksSet && !subtasksEqual(cur.Subtasks, updated.Subtasks) {
		approved, err := s.confirm.Confirm(ctx, confirmSubtaskPropagation)
		if err != nil {
			return domain.Task{}, err
		}
		propagateSubtasks = approved
	}

	today := s.today()
	now := s.now()
	next := s.snapshot()
	changed := []domain.Task{updated}
	for i := range next {
		if next[i].ID == updated.ID {
			next[i] = updated
			continue
		}
		if next[i].SeriesID != cur.SeriesID || !series.IsRemovable(next[i], today) {
			continue
		}
		sibling := next[i]
		touched := false
		if patch.Title != nil {
			sibling.Title = updated.Title
			touched = true
		}
		if patch.TagsSet {
			sibling.Tags = append([]string(nil), updated.Tags...)
			touched = true
		}
		if propagateSubtasks {
			sibling.Subtasks = domain.CloneSubtasks(updated.Subtasks, true)
			touched = true
		}
		if touched {
			sibling.UpdatedAt = now
			next[i] = sibling
			changed = append(changed, sibling)
		}
	}

	if err := s.commit(ctx, next, changed, nil); err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

// applyPatch folds a partial edit into a copy of the task.
func applyPatch(t domain.Task, p domain.TaskPatch, now time.Time) domain.Task {
	if p.Title != nil {
		if title := trimmedTitle(*p.Title); title != "" {
			t.Title = title
		}
	}
	if p.DueDateSet {
		t.DueDate = copyDate(p.DueDate)
	}
	if p.TagsSet {
		t.Tags = domain.NormalizeTags(p.Tags)
	}
	if p.SubtasksSet {
		t.Subtasks = domain.CloneSubtasks(p.Subtasks, false)
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if p.CustomInterval != nil {
		t.CustomInterval = *p.CustomInterval
	}
	if p.CustomUnit != nil {
		t.CustomUnit = *p.CustomUnit
	}
	t.UpdatedAt = now
	return t
}

func recurrenceChanged(cur domain.Task, p domain.TaskPatch) bool {
	if p.Recurrence != nil && *p.Recurrence != cur.Recurrence {
		return true
	}
	if p.CustomInterval != nil && *p.CustomInterval != cur.CustomInterval {
		return true
	}
	if p.CustomUnit != nil && *p.CustomUnit != cur.CustomUnit {
		return true
	}
	return false
}

// firstInstanceDateChanged reports whether the patch moved the due date
// of the series' opening occurrence.
func firstInstanceDateChanged(tasks []domain.Task, cur domain.Task, p domain.TaskPatch, updated domain.Task) bool {
	if !p.DueDateSet || updated.DueDate == nil {
		return false
	}
	if cur.DueDate != nil && *cur.DueDate == *updated.DueDate {
		return false
	}
	first, ok := series.First(tasks, cur.SeriesID)
	return ok && first.ID == cur.ID
}

func subtasksEqual(a, b []domain.Subtask) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text || a[i].Done != b[i].Done {
			return false
		}
	}
	return true
}

func without(tasks []domain.Task, ids []string) []domain.Task {
	if len(ids) == 0 {
		return tasks
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := tasks[:0]
	for _, t := range tasks {
		if _, gone := drop[t.ID]; !gone {
			out = append(out, t)
		}
	}
	return out
}

func trimmedTitle(value string) string {
	return strings.TrimSpace(value)
}
