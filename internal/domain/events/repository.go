package events

import (
	"context"

	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

// Repository is the persistence boundary for events and the volunteer
// membership join table.
type Repository interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	ListByStatus(ctx context.Context, status lifecycle.Status) ([]Event, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]Event, error)
	UpdateStatus(ctx context.Context, id int64, status lifecycle.Status) error
	AddVolunteer(ctx context.Context, eventID, userID int64) error
}

// UserDirectory resolves authenticated callers to user records. Satisfied by
// the users repository.
type UserDirectory interface {
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}
