package profile

import "errors"

var (
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingUsername indicates an empty username was supplied.
	ErrMissingUsername = errors.New("username is required")
	// ErrUsernameTaken indicates the requested username is already in use.
	ErrUsernameTaken = errors.New("username is already in use")
	// ErrProfileExists indicates a profile document already exists for the user.
	ErrProfileExists = errors.New("profile already exists")
)
