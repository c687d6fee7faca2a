package dto

type SubtaskItem struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type TaskItem struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	DueDate        *string       `json:"due_date,omitempty"`
	Completed      bool          `json:"completed"`
	Subtasks       []SubtaskItem `json:"subtasks,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	Recurrence     string        `json:"recurrence"`
	CustomInterval int           `json:"custom_interval,omitempty"`
	CustomUnit     *string       `json:"custom_unit,omitempty"`
	SeriesID       *string       `json:"series_id,omitempty"`
	IsLastInstance bool          `json:"is_last_instance"`
	AutoRenew      bool          `json:"auto_renew"`
	CreatedAt      string        `json:"created_at"`
	UpdatedAt      string        `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title          string        `json:"title" binding:"required,max=255"`
	DueDate        *string       `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Subtasks       []SubtaskItem `json:"subtasks" binding:"omitempty,dive"`
	Tags           []string      `json:"tags" binding:"omitempty,dive,max=64"`
	Recurrence     *string       `json:"recurrence" binding:"omitempty,oneof=none daily weekly monthly quarterly yearly custom"`
	CustomInterval *int          `json:"custom_interval" binding:"omitempty,gte=1,lte=365"`
	CustomUnit     *string       `json:"custom_unit" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
}

type UpdateTaskRequest struct {
	Title          *string       `json:"title" binding:"omitempty,max=255"`
	DueDate        *string       `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Subtasks       []SubtaskItem `json:"subtasks" binding:"omitempty,dive"`
	Tags           []string      `json:"tags" binding:"omitempty,dive,max=64"`
	Recurrence     *string       `json:"recurrence" binding:"omitempty,oneof=none daily weekly monthly quarterly yearly custom"`
	CustomInterval *int          `json:"custom_interval" binding:"omitempty,gte=1,lte=365"`
	CustomUnit     *string       `json:"custom_unit" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	EditScope      *string       `json:"edit_scope" binding:"omitempty,oneof=all this_and_following"`
	DragMove       bool          `json:"drag_move"`
	// ConfirmPropagation answers the subtask-propagation confirmation
	// in advance; absent means decline.
	ConfirmPropagation *bool `json:"confirm_propagation"`
}

type ToggleTaskRequest struct {
	// ConfirmSubtasks answers the open-subtasks confirmation in
	// advance; absent means decline, which cancels the toggle.
	ConfirmSubtasks *bool `json:"confirm_subtasks"`
}

type ToggleTaskResponse struct {
	Cancelled bool     `json:"cancelled"`
	Task      TaskItem `json:"task"`
	Notice    *string  `json:"notice,omitempty"`
	Renewed   int      `json:"renewed"`
}

type DeleteTaskResponse struct {
	UndoToken string  `json:"undo_token"`
	ExpiresAt string  `json:"expires_at"`
	Removed   int     `json:"removed"`
	Notice    *string `json:"notice,omitempty"`
}

type ExtendSeriesResponse struct {
	Tasks  []TaskItem `json:"tasks"`
	Notice *string    `json:"notice,omitempty"`
}
