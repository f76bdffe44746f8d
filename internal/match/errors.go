package match

import "errors"

var (
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingCandidateID indicates a swipe without a candidate.
	ErrMissingCandidateID = errors.New("candidate id is required")
	// ErrInvalidDirection indicates a swipe decision outside {left,right}.
	ErrInvalidDirection = errors.New("direction must be left or right")
	// ErrSelfSwipe indicates an attempt to swipe on one's own profile.
	ErrSelfSwipe = errors.New("cannot swipe on own profile")
)
