package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/volunteerhub/server/internal/api/problem"
	"github.com/volunteerhub/server/internal/domain/events"
	"github.com/volunteerhub/server/internal/domain/users"
	"github.com/volunteerhub/server/internal/metrics"
)

const adminMenuText = `Welcome, Admin! Please choose an option:
1. See all users
2. See pending users
3. Approve a user
4. View pending events
5. Approve an event
6. Exit
`

// EventService defines the event operations the HTTP layer depends on.
type EventService interface {
	Create(ctx context.Context, params events.CreateParams, organizer users.User) (events.Event, error)
	Approve(ctx context.Context, id int64) (events.Event, error)
	Register(ctx context.Context, eventID int64, callerUsername string) (events.Event, error)
	Volunteers(ctx context.Context, eventID int64) ([]users.User, error)
	ListPending(ctx context.Context) ([]events.Event, error)
	ListApproved(ctx context.Context) ([]events.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]events.Event, error)
}

// AdminHandler serves the admin menu and the approval endpoints.
type AdminHandler struct {
	users  UserService
	events EventService
	env    string
}

func NewAdminHandler(users UserService, events EventService, env string) *AdminHandler {
	return &AdminHandler{users: users, events: events, env: env}
}

// Menu handles GET /admin/menu?option=1..6 with optional userId/eventId.
func (h *AdminHandler) Menu(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("option")
	if raw == "" {
		writeInvalidOption(w, r, h.env, "Please provide an option (1-6).")
		return
	}
	option, err := strconv.Atoi(raw)
	if err != nil {
		writeInvalidOption(w, r, h.env, "Invalid option. Please choose 1, 2, 3, 4, 5, or 6.")
		return
	}

	switch option {
	case 1:
		list, err := h.users.List(r.Context())
		if err != nil {
			writeDomainError(w, r, err, h.env)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponses(list))
	case 2:
		list, err := h.users.ListPending(r.Context())
		if err != nil {
			writeDomainError(w, r, err, h.env)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponses(list))
	case 3:
		userID, ok := queryID(r, "userId")
		if !ok {
			writeInvalidOption(w, r, h.env, "Please provide a userId to approve.")
			return
		}
		h.approveUser(w, r, userID)
	case 4:
		list, err := h.events.ListPending(r.Context())
		if err != nil {
			writeDomainError(w, r, err, h.env)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(list))
	case 5:
		eventID, ok := queryID(r, "eventId")
		if !ok {
			writeInvalidOption(w, r, h.env, "Please provide an eventId to approve.")
			return
		}
		h.approveEvent(w, r, eventID)
	case 6:
		writeText(w, http.StatusOK, "Exiting menu. Goodbye!\n")
	default:
		writeInvalidOption(w, r, h.env, "Invalid option. Please choose 1, 2, 3, 4, 5, or 6.")
	}
}

// ApproveUser handles PUT /admin/approve/{userId}.
func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/validation-error", "Invalid user id", err, h.env)
		return
	}
	h.approveUser(w, r, userID)
}

// ApproveEvent handles PUT /admin/approve-event/{eventId}.
func (h *AdminHandler) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/validation-error", "Invalid event id", err, h.env)
		return
	}
	h.approveEvent(w, r, eventID)
}

func (h *AdminHandler) approveUser(w http.ResponseWriter, r *http.Request, userID int64) {
	if _, err := h.users.Approve(r.Context(), userID); err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}
	metrics.ApprovalsTotal.WithLabelValues("user").Inc()
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User with ID %d has been approved.", userID),
	})
}

func (h *AdminHandler) approveEvent(w http.ResponseWriter, r *http.Request, eventID int64) {
	if _, err := h.events.Approve(r.Context(), eventID); err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}
	metrics.ApprovalsTotal.WithLabelValues("event").Inc()
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Event with ID %d has been approved.", eventID),
	})
}
