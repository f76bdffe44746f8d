package tasks

import "errors"

var (
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingTitle indicates a task without a title.
	ErrMissingTitle = errors.New("task title is required")
	// ErrTaskNotFound indicates the referenced task is not in the user's list.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidDifficulty indicates a difficulty outside {easy,medium,hard}.
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
	// ErrInvalidPriority indicates a priority outside {green,yellow,red}.
	ErrInvalidPriority = errors.New("priority must be green, yellow or red")
)
