package service

import (
	"context"

	"go.uber.org/zap"

	"planloop/internal/core/domain"
	"planloop/internal/core/recur"
	"planloop/internal/core/series"
)

const confirmForceSubtasks = "This task still has open subtasks. Complete them as well?"

// ToggleComplete flips a task's completion state. Completing a task
// with open subtasks needs the user's approval to force-complete them;
// declining cancels the whole toggle. Completing the last instance of
// an auto-renewing series also materializes the next batch.
func (s *TaskService) ToggleComplete(ctx context.Context, id string) (domain.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, idx := s.find(id)
	if idx < 0 {
		return domain.ToggleResult{}, domain.ErrTaskNotFound
	}

	now := s.now()
	updated := cur
	updated.UpdatedAt = now

	if cur.Completed {
		updated.Completed = false
		next := s.snapshot()
		next[idx] = updated
		if err := s.commit(ctx, next, []domain.Task{updated}, nil); err != nil {
			return domain.ToggleResult{}, err
		}
		return domain.ToggleResult{Task: updated}, nil
	}

	if cur.HasOpenSubtasks() {
		approved, err := s.confirm.Confirm(ctx, confirmForceSubtasks)
		if err != nil {
			return domain.ToggleResult{}, err
		}
		if !approved {
			return domain.ToggleResult{Cancelled: true, Task: cur}, nil
		}
	}

	updated.Completed = true
	updated.Subtasks = domain.CloneSubtasks(cur.Subtasks, false)
	for i := range updated.Subtasks {
		updated.Subtasks[i].Done = true
	}

	renewed := s.renewIfNeeded(updated)

	next := s.snapshot()
	next[idx] = updated
	next = append(next, renewed...)
	toSave := append([]domain.Task{updated}, renewed...)
	if err := s.commit(ctx, next, toSave, nil); err != nil {
		return domain.ToggleResult{}, err
	}
	if len(renewed) > 0 {
		zap.L().Info("series auto-renewed",
			zap.String("task_id", updated.ID),
			zap.String("title", updated.Title),
			zap.Int("new_occurrences", len(renewed)))
	}
	return domain.ToggleResult{Task: updated, Renewed: renewed}, nil
}

// renewIfNeeded builds the follow-up batch for a just-completed last
// instance of an auto-renewing series. The new batch starts exactly one
// calendar day after the completed occurrence's due date, under a fresh
// series identifier: renewal opens a new series rather than extending
// the closed one, and the old last-instance flag stays where it is.
func (s *TaskService) renewIfNeeded(t domain.Task) []domain.Task {
	if !t.IsLastInstance || !t.AutoRenew || !t.Recurrence.IsSet() || t.DueDate == nil || !t.InSeries() {
		return nil
	}
	start := t.DueDate.AddDays(1)
	return recur.Instances(t, start, s.newID(), recur.DefaultBatchSize, s.now(), s.newID)
}

// ExtendSeries appends another batch to an existing series on explicit
// request. Unlike auto-renewal this keeps the series identifier and
// hands the last-instance flag over to the new batch's tail.
func (s *TaskService) ExtendSeries(ctx context.Context, id string) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, idx := s.find(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}
	if !cur.InSeries() {
		return nil, domain.ErrNotRecurring
	}

	last, ok := series.Last(s.tasks, cur.SeriesID)
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}

	now := s.now()
	start := last.DueDate.AddDays(1)
	batch := recur.Instances(last, start, cur.SeriesID, recur.DefaultBatchSize, now, s.newID)
	if len(batch) == 0 {
		return nil, domain.ErrNotRecurring
	}

	prior := last
	prior.IsLastInstance = false
	prior.UpdatedAt = now

	next := s.snapshot()
	for i := range next {
		if next[i].ID == prior.ID {
			next[i] = prior
		}
	}
	next = append(next, batch...)
	if err := s.commit(ctx, next, append([]domain.Task{prior}, batch...), nil); err != nil {
		return nil, err
	}
	return batch, nil
}
