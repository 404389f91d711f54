// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task exists with the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotTaskOwner is returned when a task exists but belongs to another user.
	// The transport layer must render it exactly like ErrTaskNotFound so a caller
	// cannot probe for the existence of other users' tasks.
	ErrNotTaskOwner = errors.New("task belongs to another user")
)
