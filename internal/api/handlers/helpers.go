package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/volunteerhub/server/internal/api/problem"
	"github.com/volunteerhub/server/internal/domain/events"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

// UserResponse is a user in API responses. The password hash never appears in
// any representation.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// EventResponse is an event in API responses.
type EventResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	Organizer   string         `json:"organizer"`
	Status      string         `json:"status"`
	Volunteers  []UserResponse `json:"volunteers,omitempty"`
}

// MessageResponse is a simple message body.
type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(user users.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role.Name,
		Status:   user.Status.String(),
	}
}

func toUserResponses(list []users.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, user := range list {
		out = append(out, toUserResponse(user))
	}
	return out
}

func toEventResponse(event events.Event) EventResponse {
	resp := EventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date,
		Organizer:   event.Organizer.Username,
		Status:      event.Status.String(),
	}
	if len(event.Volunteers) > 0 {
		resp.Volunteers = toUserResponses(event.Volunteers)
	}
	return resp
}

func toEventResponses(list []events.Event) []EventResponse {
	out := make([]EventResponse, 0, len(list))
	for _, event := range list {
		out = append(out, toEventResponse(event))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}

func queryID(r *http.Request, key string) (int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeDomainError translates domain sentinels to problem responses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, env string) {
	switch {
	case errors.Is(err, users.ErrInvalidRole), errors.Is(err, users.ErrValidation), errors.Is(err, events.ErrValidation):
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/validation-error", "Invalid request", err, env)
	case errors.Is(err, users.ErrUsernameTaken):
		problem.Write(w, r, http.StatusConflict,
			"https://volunteerhub.dev/problems/conflict", "Conflict", err, env,
			problem.WithDetail("Username is already taken."))
	case errors.Is(err, lifecycle.ErrAlreadyApproved):
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/conflict", "Already approved", err, env,
			problem.WithDetail("Entity is already approved."))
	case errors.Is(err, events.ErrAlreadyRegistered):
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/conflict", "Already registered", err, env,
			problem.WithDetail("You are already registered for this event."))
	case errors.Is(err, users.ErrUserNotFound):
		problem.Write(w, r, http.StatusNotFound,
			"https://volunteerhub.dev/problems/not-found", "User not found", err, env)
	case errors.Is(err, events.ErrEventNotFound):
		problem.Write(w, r, http.StatusNotFound,
			"https://volunteerhub.dev/problems/not-found", "Event not found", err, env)
	default:
		problem.Write(w, r, http.StatusInternalServerError,
			"https://volunteerhub.dev/problems/server-error", "Server error", err, env)
	}
}

func writeInvalidOption(w http.ResponseWriter, r *http.Request, env string, detail string) {
	problem.Write(w, r, http.StatusBadRequest,
		"https://volunteerhub.dev/problems/validation-error", "Invalid option", nil, env,
		problem.WithDetail(detail))
}
