package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"planloop/internal/core/domain"
	"planloop/internal/core/series"
)

// DeleteTask removes a task. For a series member the whole removable
// set (future or incomplete-overdue occurrences) goes with it while
// completed history stays. The returned PendingUndo re-inserts the
// exact removed set when applied within the undo window.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (domain.PendingUndo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, idx := s.find(id)
	if idx < 0 {
		return domain.PendingUndo{}, domain.ErrTaskNotFound
	}

	removed := []domain.Task{cur}
	if cur.InSeries() {
		removed = series.Removable(s.tasks, cur.SeriesID, s.today())
	}
	return s.remove(ctx, removed)
}

// DeleteSeries removes a series' occurrences by scope: "future" leaves
// everything overdue untouched, "open" also clears incomplete overdue
// occurrences. Completed past occurrences always survive.
func (s *TaskService) DeleteSeries(ctx context.Context, seriesID string, scope domain.DeleteScope) (domain.PendingUndo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := series.Members(s.tasks, seriesID)
	if len(members) == 0 {
		return domain.PendingUndo{}, domain.ErrSeriesNotFound
	}

	today := s.today()
	var removed []domain.Task
	for _, t := range members {
		switch scope {
		case domain.DeleteScopeOpen:
			if series.IsRemovable(t, today) {
				removed = append(removed, t)
			}
		default:
			if t.DueDate != nil && !t.DueDate.Before(today) {
				removed = append(removed, t)
			}
		}
	}
	return s.remove(ctx, removed)
}

func (s *TaskService) remove(ctx context.Context, removed []domain.Task) (domain.PendingUndo, error) {
	undo := domain.PendingUndo{
		Token:     s.newID(),
		Tasks:     removed,
		ExpiresAt: s.now().Add(undoWindow),
	}
	if len(removed) == 0 {
		// Nothing removable (all completed history): successful no-op.
		return undo, nil
	}

	next := without(s.snapshot(), series.IDs(removed))
	if err := s.commit(ctx, next, nil, series.IDs(removed)); err != nil {
		return domain.PendingUndo{}, err
	}

	token := undo.Token
	entry := &pendingDelete{undo: undo}
	entry.timer = time.AfterFunc(undoWindow, func() {
		s.mu.Lock()
		delete(s.undos, token)
		s.mu.Unlock()
	})
	s.undos[token] = entry
	zap.L().Info("tasks deleted", zap.Int("count", len(removed)), zap.String("undo_token", token))
	return undo, nil
}

// Undo re-inserts the rows removed by an earlier delete. After the undo
// window has passed the token is gone and ErrUndoExpired is returned.
func (s *TaskService) Undo(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.undos[token]
	if !ok || s.now().After(entry.undo.ExpiresAt) {
		return domain.ErrUndoExpired
	}

	if err := s.commit(ctx, append(s.snapshot(), entry.undo.Tasks...), entry.undo.Tasks, nil); err != nil {
		return err
	}
	entry.timer.Stop()
	delete(s.undos, token)
	return nil
}
