package session

import "errors"

// Validation errors, blocked before any request is sent
var (
	ErrUnknownView      = errors.New("unknown view")
	ErrMissingEntityID  = errors.New("entity id is required for this view")
	ErrEmptyPost        = errors.New("post text must not be empty")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownPost      = errors.New("post is not displayed")
	ErrUnknownReaction  = errors.New("unknown reaction kind")
)
