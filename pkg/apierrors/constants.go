package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidSeriesID    = "invalidSeriesID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidUndoToken   = "invalidUndoToken"
	MsgTaskNotFound       = "taskNotFound"
	MsgSeriesNotFound     = "seriesNotFound"
	MsgTaskNotRecurring   = "taskNotRecurring"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailToggleTask     = "failToggleTask"
	MsgFailExtendSeries   = "failExtendSeries"
	MsgFailUndo           = "failUndo"
	MsgUndoExpired        = "undoExpired"
)

// Notice keys for non-error user-facing messages.
const (
	NoticeSeriesRenewed  = "seriesRenewed"
	NoticeSeriesExtended = "seriesExtended"
	NoticeTasksDeleted   = "tasksDeleted"
)
