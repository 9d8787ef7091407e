package users

import (
	"context"

	"github.com/volunteerhub/server/internal/domain/lifecycle"
)

// Repository is the persistence boundary for user records.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListByStatus(ctx context.Context, status lifecycle.Status) ([]User, error)
	UpdateStatus(ctx context.Context, id int64, status lifecycle.Status) error
}

// RoleRepository is the persistence boundary for the fixed role set.
type RoleRepository interface {
	Ensure(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (*Role, error)
}
