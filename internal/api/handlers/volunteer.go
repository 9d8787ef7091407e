package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/volunteerhub/server/internal/api/middleware"
	"github.com/volunteerhub/server/internal/api/problem"
	"github.com/volunteerhub/server/internal/metrics"
)

const volunteerMenuText = `Welcome, Volunteer! Please choose an option:
1. View all approved events
2. Register for an event
3. Exit
`

// VolunteerHandler serves the volunteer menu: browsing approved events and
// registering for them.
type VolunteerHandler struct {
	events EventService
	env    string
}

func NewVolunteerHandler(events EventService, env string) *VolunteerHandler {
	return &VolunteerHandler{events: events, env: env}
}

// Menu handles GET /volunteer/menu?option=1..3. Without an option the menu
// text is returned.
func (h *VolunteerHandler) Menu(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("option")
	if raw == "" {
		writeText(w, http.StatusOK, volunteerMenuText)
		return
	}
	option, err := strconv.Atoi(raw)
	if err != nil {
		writeInvalidOption(w, r, h.env, "Invalid option. Please choose 1, 2, or 3.")
		return
	}

	switch option {
	case 1:
		list, err := h.events.ListApproved(r.Context())
		if err != nil {
			writeDomainError(w, r, err, h.env)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(list))
	case 2:
		eventID, ok := queryID(r, "eventId")
		if !ok {
			writeInvalidOption(w, r, h.env, "Please provide an eventId to register.")
			return
		}
		h.register(w, r, eventID)
	case 3:
		writeText(w, http.StatusOK, "Exiting menu. Goodbye!\n")
	default:
		writeInvalidOption(w, r, h.env, "Invalid option. Please choose 1, 2, or 3.")
	}
}

func (h *VolunteerHandler) register(w http.ResponseWriter, r *http.Request, eventID int64) {
	caller, ok := middleware.UserFromRequest(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized,
			"https://volunteerhub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.env)
		return
	}

	event, err := h.events.Register(r.Context(), eventID, caller.Username)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	metrics.RegistrationsTotal.Inc()
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("You have successfully registered for the event: %s", event.Name),
	})
}
