package ports

import (
	"context"

	"planloop/internal/core/domain"
)

// TaskStore is the hosted persistence boundary. Implementations upsert
// on SaveAll and hard-delete on DeleteByIDs; both are no-ops on empty
// input, and an empty SaveAll is never "delete everything".
type TaskStore interface {
	LoadAll(ctx context.Context) ([]domain.Task, error)
	SaveAll(ctx context.Context, tasks []domain.Task) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

// Confirmer asks the user to approve a destructive or propagating
// action. Declining is a normal cancellation, not an error.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// SyncGuard brackets the span of a local mutation's persistence calls
// so reactive reloads can be held off while a write is in flight.
type SyncGuard interface {
	BeginSave()
	EndSave()
}

// TaskService is the mutation surface exposed to the UI layer.
type TaskService interface {
	Tasks() []domain.Task
	Reload(ctx context.Context) error
	AddTask(ctx context.Context, input domain.CreateTaskInput) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch, intent domain.UpdateIntent) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) (domain.PendingUndo, error)
	DeleteSeries(ctx context.Context, seriesID string, scope domain.DeleteScope) (domain.PendingUndo, error)
	ToggleComplete(ctx context.Context, id string) (domain.ToggleResult, error)
	ExtendSeries(ctx context.Context, id string) ([]domain.Task, error)
	Undo(ctx context.Context, token string) error
}
