package users

import (
	"time"

	"github.com/volunteerhub/server/internal/domain/lifecycle"
)

// Role is a persisted role record. Names are unique and drawn from the fixed
// set seeded at bootstrap (ADMIN, ORGANIZATION, VOLUNTEER).
type Role struct {
	ID   int64
	Name string
}

// User is a platform account. The role is fixed at creation; status moves
// PENDING -> APPROVED through an admin-initiated approval only.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Role         Role
	Status       lifecycle.Status
	CreatedAt    time.Time
}
