// Package service holds the series mutation orchestrator: the decision
// logic behind add/update/complete/delete/extend and the auto-renewal
// that fires when a series' last instance is completed.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"planloop/internal/core/domain"
	"planloop/internal/core/ports"
	"planloop/internal/core/recur"
)

// undoWindow is how long a delete can be taken back.
const undoWindow = 5 * time.Second

// TaskService owns the in-memory task collection and orchestrates every
// mutation against it and the store. The collection is replaced
// wholesale on each mutation; readers never observe a partial edit.
type TaskService struct {
	store   ports.TaskStore
	confirm ports.Confirmer
	guard   ports.SyncGuard

	now   func() time.Time
	today func() domain.Date
	newID func() string

	mu    sync.Mutex
	tasks []domain.Task
	undos map[string]*pendingDelete
}

type pendingDelete struct {
	undo  domain.PendingUndo
	timer *time.Timer
}

func NewTaskService(store ports.TaskStore, confirm ports.Confirmer) *TaskService {
	return &TaskService{
		store:   store,
		confirm: confirm,
		guard:   noopGuard{},
		now:     time.Now,
		today:   domain.Today,
		newID:   uuid.NewString,
		undos:   make(map[string]*pendingDelete),
	}
}

var _ ports.TaskService = (*TaskService)(nil)

// SetSyncGuard registers the session guard that holds off reactive
// reloads while this service's persistence calls are in flight.
func (s *TaskService) SetSyncGuard(guard ports.SyncGuard) {
	if guard != nil {
		s.guard = guard
	}
}

type noopGuard struct{}

func (noopGuard) BeginSave() {}
func (noopGuard) EndSave()   {}

// Tasks returns a snapshot of the current collection.
func (s *TaskService) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.tasks...)
}

// Reload replaces the collection with the store's current contents.
func (s *TaskService) Reload(ctx context.Context) error {
	tasks, err := s.store.LoadAll(ctx)
	if err != nil {
		zap.L().Error("failed to load tasks", zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// AddTask creates one task, or a full batch when the input carries a
// recurrence rule and a due date. A rule without a due date is ignored
// with a log line and a single plain task is created instead.
func (s *TaskService) AddTask(ctx context.Context, input domain.CreateTaskInput) ([]domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if input.Recurrence.IsSet() && input.DueDate == nil {
		zap.L().Info("recurrence ignored for task without due date", zap.String("title", title))
		input.Recurrence = domain.RecurrenceNone
	}

	if input.Recurrence.IsSet() {
		template := domain.Task{
			Title:          title,
			Subtasks:       input.Subtasks,
			Tags:           input.Tags,
			Recurrence:     input.Recurrence,
			CustomInterval: input.CustomInterval,
			CustomUnit:     input.CustomUnit,
		}
		batch := recur.Instances(template, *input.DueDate, s.newID(), recur.DefaultBatchSize, now, s.newID)
		if len(batch) == 0 {
			zap.L().Info("recurrence rule produced no occurrences", zap.String("title", title))
		} else {
			if err := s.commit(ctx, append(s.snapshot(), batch...), batch, nil); err != nil {
				return nil, err
			}
			return batch, nil
		}
	}

	task := domain.Task{
		ID:        s.newID(),
		Title:     title,
		DueDate:   copyDate(input.DueDate),
		Subtasks:  domain.CloneSubtasks(input.Subtasks, false),
		Tags:      domain.NormalizeTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commit(ctx, append(s.snapshot(), task), []domain.Task{task}, nil); err != nil {
		return nil, err
	}
	return []domain.Task{task}, nil
}

// commit persists a mutation and, on success, swaps in the new
// collection. Deletions are issued and checked before insertions so a
// concurrent reload can never observe the replacement batch alongside
// the rows it replaces. There is no rollback across the local/remote
// boundary: a failed insert after a successful delete leaves the store
// ahead of local state until the next reload.
func (s *TaskService) commit(ctx context.Context, next []domain.Task, toSave []domain.Task, toDelete []string) error {
	s.guard.BeginSave()
	defer s.guard.EndSave()

	if len(toDelete) > 0 {
		if err := s.store.DeleteByIDs(ctx, toDelete); err != nil {
			zap.L().Error("failed to delete tasks", zap.Int("count", len(toDelete)), zap.Error(err))
			return err
		}
	}
	if len(toSave) > 0 {
		if err := s.store.SaveAll(ctx, toSave); err != nil {
			zap.L().Error("failed to save tasks", zap.Int("count", len(toSave)), zap.Error(err))
			return err
		}
	}
	s.tasks = next
	return nil
}

// snapshot copies the collection for copy-on-write edits. Callers must
// hold s.mu.
func (s *TaskService) snapshot() []domain.Task {
	return append([]domain.Task(nil), s.tasks...)
}

func (s *TaskService) find(id string) (domain.Task, int) {
	for i, t := range s.tasks {
		if t.ID == id {
			return t, i
		}
	}
	return domain.Task{}, -1
}

func copyDate(d *domain.Date) *domain.Date {
	if d == nil {
		return nil
	}
	value := *d
	return &value
}
