package tasks

import "errors"

var (
	ErrTitleRequired    = errors.New("task title is required")
	ErrNotFound         = errors.New("task not found")
	ErrAlreadyCompleted = errors.New("task is already completed")
	ErrAmbiguousID      = errors.New("task id prefix is ambiguous")
)
