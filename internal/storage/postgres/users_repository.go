package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

var _ users.Repository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

const uniqueViolation = "23505"

const userColumns = `u.id, u.username, u.password_hash, u.full_name, u.email, u.status, u.created_at, r.id, r.name`

func (r *UserRepository) Create(ctx context.Context, user users.User) (users.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (username, password_hash, full_name, email, role_id, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.Role.ID,
		string(user.Status),
	)

	var createdAt pgtype.Timestamptz
	if err := row.Scan(&user.ID, &createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return users.User{}, users.ErrUsernameTaken
		}
		return users.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.CreatedAt = createdAt.Time
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*users.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+userColumns+`
  FROM users u
  JOIN roles r ON r.id = u.role_id
 WHERE u.id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+userColumns+`
  FROM users u
  JOIN roles r ON r.id = u.role_id
 WHERE u.username = $1`, username)
	return scanUser(row)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
  FROM users u
  JOIN roles r ON r.id = u.role_id
 ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListByStatus(ctx context.Context, status lifecycle.Status) ([]users.User, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
  FROM users u
  JOIN roles r ON r.id = u.role_id
 WHERE u.status = $1
 ORDER BY u.id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list users by status: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status lifecycle.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*users.User, error) {
	var (
		user      users.User
		status    string
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&status,
		&createdAt,
		&user.Role.ID,
		&user.Role.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Status = lifecycle.Status(status)
	user.CreatedAt = createdAt.Time
	return &user, nil
}

func collectUsers(rows pgx.Rows) ([]users.User, error) {
	out := []users.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}
