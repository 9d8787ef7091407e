package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volunteerhub/server/internal/domain/events"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

const eventColumns = `e.id, e.name, e.description, e.date, e.status, e.created_at,
       o.id, o.username, o.full_name, o.email, o.status, r.id, r.name`

func (r *EventRepository) Create(ctx context.Context, event events.Event) (events.Event, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO events (name, description, date, organizer_id, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`,
		event.Name,
		event.Description,
		event.Date,
		event.Organizer.ID,
		string(event.Status),
	)

	var createdAt pgtype.Timestamptz
	if err := row.Scan(&event.ID, &createdAt); err != nil {
		return events.Event{}, fmt.Errorf("insert event: %w", err)
	}
	event.CreatedAt = createdAt.Time
	return event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN users o ON o.id = e.organizer_id
  JOIN roles r ON r.id = o.role_id
 WHERE e.id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		return nil, err
	}

	volunteers, err := r.volunteers(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Volunteers = volunteers
	return event, nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status lifecycle.Status) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN users o ON o.id = e.organizer_id
  JOIN roles r ON r.id = o.role_id
 WHERE e.status = $1
 ORDER BY e.date, e.id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list events by status: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN users o ON o.id = e.organizer_id
  JOIN roles r ON r.id = o.role_id
 WHERE e.organizer_id = $1
 ORDER BY e.date, e.id`, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status lifecycle.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE events SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrEventNotFound
	}
	return nil
}

// AddVolunteer inserts a membership row. The composite primary key turns a
// racing duplicate insert into ErrAlreadyRegistered instead of a second row.
func (r *EventRepository) AddVolunteer(ctx context.Context, eventID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO event_volunteers (event_id, user_id) VALUES ($1, $2)`, eventID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return events.ErrAlreadyRegistered
		}
		return fmt.Errorf("add volunteer: %w", err)
	}
	return nil
}

func (r *EventRepository) volunteers(ctx context.Context, eventID int64) ([]users.User, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
  FROM event_volunteers ev
  JOIN users u ON u.id = ev.user_id
  JOIN roles r ON r.id = u.role_id
 WHERE ev.event_id = $1
 ORDER BY u.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var (
		event           events.Event
		status          string
		organizerStatus string
		date            pgtype.Timestamptz
		createdAt       pgtype.Timestamptz
	)
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&date,
		&status,
		&createdAt,
		&event.Organizer.ID,
		&event.Organizer.Username,
		&event.Organizer.FullName,
		&event.Organizer.Email,
		&organizerStatus,
		&event.Organizer.Role.ID,
		&event.Organizer.Role.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	event.Status = lifecycle.Status(status)
	event.Organizer.Status = lifecycle.Status(organizerStatus)
	event.Date = date.Time
	event.CreatedAt = createdAt.Time
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]events.Event, error) {
	out := []events.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
