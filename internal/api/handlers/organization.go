package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/volunteerhub/server/internal/api/middleware"
	"github.com/volunteerhub/server/internal/api/problem"
	"github.com/volunteerhub/server/internal/domain/events"
)

const organizationMenuText = `Welcome, Organization User! Please choose an option:
1. Create a new event
2. See volunteers registered for an event
3. Exit
`

// OrganizationHandler serves the organization menu, event creation, and
// volunteer listings.
type OrganizationHandler struct {
	events EventService
	env    string
}

func NewOrganizationHandler(events EventService, env string) *OrganizationHandler {
	return &OrganizationHandler{events: events, env: env}
}

// Menu handles GET /organization/menu?option=1..3. Without an option the
// menu text is returned.
func (h *OrganizationHandler) Menu(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("option")
	if raw == "" {
		writeText(w, http.StatusOK, organizationMenuText)
		return
	}
	option, err := strconv.Atoi(raw)
	if err != nil {
		writeInvalidOption(w, r, h.env, "Invalid option. Please choose 1, 2, or 3.")
		return
	}

	switch option {
	case 1:
		writeText(w, http.StatusOK, "Use the endpoint /organization/create-event to create a new event.\n")
	case 2:
		eventID, ok := queryID(r, "eventId")
		if !ok {
			writeInvalidOption(w, r, h.env, "Please provide an eventId to view volunteers.")
			return
		}
		h.eventVolunteers(w, r, eventID)
	case 3:
		writeText(w, http.StatusOK, "Exiting menu. Goodbye!\n")
	default:
		writeInvalidOption(w, r, h.env, "Invalid option. Please choose 1, 2, or 3.")
	}
}

type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// CreateEvent handles POST /organization/create-event. The event is owned by
// the caller and starts PENDING.
func (h *OrganizationHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromRequest(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized,
			"https://volunteerhub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.env)
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/validation-error", "Invalid request body", err, h.env)
		return
	}

	event, err := h.events.Create(r.Context(), events.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
	}, caller)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// EventVolunteers handles GET /organization/event-volunteers/{eventId}.
// Ownership is deliberately not checked; the role requirement alone gates
// this read.
func (h *OrganizationHandler) EventVolunteers(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/validation-error", "Invalid event id", err, h.env)
		return
	}
	h.eventVolunteers(w, r, eventID)
}

// MyEvents handles GET /organization/events, listing the caller's own events.
func (h *OrganizationHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromRequest(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized,
			"https://volunteerhub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.env)
		return
	}

	list, err := h.events.ListByOrganizer(r.Context(), caller.ID)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(list))
}

func (h *OrganizationHandler) eventVolunteers(w http.ResponseWriter, r *http.Request, eventID int64) {
	volunteers, err := h.events.Volunteers(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(volunteers))
}
