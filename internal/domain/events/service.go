package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

// Service governs the event half of the approval workflow and volunteer
// registration.
type Service struct {
	repo      Repository
	directory UserDirectory
	logger    zerolog.Logger
}

func NewService(repo Repository, directory UserDirectory, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		logger:    logger.With().Str("component", "events").Logger(),
	}
}

// CreateParams contains the fields an organization supplies for a new event.
type CreateParams struct {
	Name        string
	Description string
	Date        time.Time
}

// Create stores a new PENDING event owned by the caller.
func (s *Service) Create(ctx context.Context, params CreateParams, organizer users.User) (Event, error) {
	if strings.TrimSpace(params.Name) == "" {
		return Event{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if params.Date.IsZero() {
		return Event{}, fmt.Errorf("%w: date is required", ErrValidation)
	}

	event, err := s.repo.Create(ctx, Event{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Date:        params.Date,
		Organizer:   organizer,
		Status:      lifecycle.StatusPending,
	})
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info().
		Int64("event_id", event.ID).
		Str("organizer", organizer.Username).
		Msg("event created")
	return event, nil
}

// Approve moves an event from PENDING to APPROVED. Re-approval returns
// lifecycle.ErrAlreadyApproved and leaves state unchanged.
func (s *Service) Approve(ctx context.Context, id int64) (Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}

	next, err := event.Status.Approve()
	if err != nil {
		return Event{}, err
	}

	if err := s.repo.UpdateStatus(ctx, event.ID, next); err != nil {
		return Event{}, fmt.Errorf("update event status: %w", err)
	}
	event.Status = next

	s.logger.Info().Int64("event_id", event.ID).Msg("event approved")
	return *event, nil
}

// Register adds the caller to the event's volunteer set. The membership check
// runs before the insert; the join table's primary key bounds the race at the
// storage layer.
func (s *Service) Register(ctx context.Context, eventID int64, callerUsername string) (Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return Event{}, err
	}

	caller, err := s.directory.GetByUsername(ctx, callerUsername)
	if err != nil {
		return Event{}, err
	}

	if event.HasVolunteer(caller.ID) {
		return Event{}, ErrAlreadyRegistered
	}

	if err := s.repo.AddVolunteer(ctx, event.ID, caller.ID); err != nil {
		return Event{}, fmt.Errorf("add volunteer: %w", err)
	}
	event.Volunteers = append(event.Volunteers, *caller)

	s.logger.Info().
		Int64("event_id", event.ID).
		Str("volunteer", caller.Username).
		Msg("volunteer registered")
	return *event, nil
}

// Volunteers lists the users registered for an event.
func (s *Service) Volunteers(ctx context.Context, eventID int64) ([]users.User, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Volunteers, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	return *event, nil
}

func (s *Service) ListPending(ctx context.Context) ([]Event, error) {
	return s.repo.ListByStatus(ctx, lifecycle.StatusPending)
}

func (s *Service) ListApproved(ctx context.Context) ([]Event, error) {
	return s.repo.ListByStatus(ctx, lifecycle.StatusApproved)
}

func (s *Service) ListByOrganizer(ctx context.Context, organizerID int64) ([]Event, error) {
	return s.repo.ListByOrganizer(ctx, organizerID)
}
