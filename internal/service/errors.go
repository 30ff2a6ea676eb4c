package service

import "errors"

// Game errors surfaced to handlers. Validation failures are reported
// before any store access; store failures propagate wrapped.
var (
	ErrSessionFull        = errors.New("session is full")
	ErrSessionEnded       = errors.New("session has already ended")
	ErrSessionInProgress  = errors.New("session is already in progress")
	ErrPlayerNotInSession = errors.New("player not found in session")
	ErrUserNotFound       = errors.New("user not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidSessionCode = errors.New("session code must be 6 digits")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
