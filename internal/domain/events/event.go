package events

import (
	"time"

	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

// Event is a volunteering event. The organizer is fixed at creation; the
// volunteers set grows only through self-registration and holds each user at
// most once.
type Event struct {
	ID          int64
	Name        string
	Description string
	Date        time.Time
	Organizer   users.User
	Volunteers  []users.User
	Status      lifecycle.Status
	CreatedAt   time.Time
}

// HasVolunteer reports whether the user is already in the volunteers set.
func (e *Event) HasVolunteer(userID int64) bool {
	for _, volunteer := range e.Volunteers {
		if volunteer.ID == userID {
			return true
		}
	}
	return false
}
