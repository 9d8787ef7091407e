package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the two-state approval lifecycle shared by users and events.
// The only allowed transition is PENDING -> APPROVED; APPROVED is terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

var (
	ErrAlreadyApproved = errors.New("already approved")
	ErrUnknownStatus   = errors.New("unknown status")
)

func Parse(value string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
}

// Approve returns the next status. Approving an already-approved entity is a
// client error, not a crash.
func (s Status) Approve() (Status, error) {
	if s == StatusApproved {
		return s, ErrAlreadyApproved
	}
	return StatusApproved, nil
}

func (s Status) IsApproved() bool {
	return s == StatusApproved
}

func (s Status) IsPending() bool {
	return s == StatusPending
}

func (s Status) String() string {
	return string(s)
}
