package events

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrValidation        = errors.New("invalid event")
)
