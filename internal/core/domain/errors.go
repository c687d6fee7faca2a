package domain

import "errors"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrSeriesNotFound = errors.New("series not found")
	ErrEmptyTitle     = errors.New("task title is empty")
	ErrNotRecurring   = errors.New("task is not part of a series")
	ErrUndoExpired    = errors.New("undo window expired")
)
