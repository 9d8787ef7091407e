package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/server/internal/domain/users"
)

var _ users.RoleRepository = (*RoleRepository)(nil)

type RoleRepository struct {
	pool *pgxpool.Pool
}

// Ensure inserts the role if it does not exist. Safe to re-run at every
// process start.
func (r *RoleRepository) Ensure(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("ensure role: %w", err)
	}
	return nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*users.Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)

	var role users.Role
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrInvalidRole
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}
