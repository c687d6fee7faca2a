package domain

import "time"

// CreateTaskInput carries the fields a caller supplies when adding a task.
type CreateTaskInput struct {
	Title          string
	DueDate        *Date
	Subtasks       []Subtask
	Tags           []string
	Recurrence     Recurrence
	CustomInterval int
	CustomUnit     Recurrence
}

// TaskPatch is a partial update. Pointer fields distinguish "not sent"
// from "sent as zero"; the Set flags distinguish "not sent" from "sent
// as null" for fields that can be cleared.
type TaskPatch struct {
	Title          *string
	DueDate        *Date
	DueDateSet     bool
	Tags           []string
	TagsSet        bool
	Subtasks       []Subtask
	SubtasksSet    bool
	Recurrence     *Recurrence
	CustomInterval *int
	CustomUnit     *Recurrence
}

// EditScope selects how far a recurrence-settings change reaches.
type EditScope string

const (
	// EditScopeAll regenerates the whole series from the first
	// instance's original due date, completed history included, under a
	// fresh series identifier.
	EditScopeAll EditScope = "all"
	// EditScopeThisAndFollowing regenerates from the edited occurrence's
	// due date, keeps completed past occurrences and reuses the series
	// identifier.
	EditScopeThisAndFollowing EditScope = "thisAndFollowing"
)

// UpdateIntent tells the orchestrator how the caller wants an update
// applied, instead of smuggling flags through the field payload.
type UpdateIntent struct {
	// DragMove requests a single-row reschedule that bypasses all
	// series-wide logic, so moving one occurrence on a calendar view
	// never perturbs its siblings.
	DragMove bool
	// Scope is consulted only when recurrence settings change.
	Scope EditScope
}

// DeleteScope selects which occurrences a series delete removes.
type DeleteScope string

const (
	// DeleteScopeFuture removes occurrences due on or after today.
	DeleteScopeFuture DeleteScope = "future"
	// DeleteScopeOpen additionally removes overdue incomplete occurrences.
	DeleteScopeOpen DeleteScope = "open"
)

// PendingUndo is the handle returned by delete operations; applying it
// within the undo window re-inserts the exact removed set.
type PendingUndo struct {
	Token     string
	Tasks     []Task
	ExpiresAt time.Time
}

// ToggleResult reports what a completion toggle did.
type ToggleResult struct {
	// Cancelled is true when the user declined the open-subtasks
	// confirmation; nothing was changed.
	Cancelled bool
	Task      Task
	// Renewed holds the freshly generated batch when completing the last
	// instance of an auto-renewing series started a new one.
	Renewed []Task
}
