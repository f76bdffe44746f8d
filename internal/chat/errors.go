package chat

import "errors"

var (
	// ErrMissingChatID indicates a required chat id was absent.
	ErrMissingChatID = errors.New("chat id is required")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingSenderID indicates a message write without an authenticated sender.
	ErrMissingSenderID = errors.New("sender id is required")
	// ErrSameParticipant indicates an attempt to open a chat with oneself.
	ErrSameParticipant = errors.New("chat participants must differ")
)
