package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/volunteerhub/server/internal/domain/events"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
)

func TestVolunteerMenu_NoOptionShowsMenu(t *testing.T) {
	handler := NewVolunteerHandler(new(MockEventService), "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Welcome, Volunteer!")
	assert.Contains(t, res.Body.String(), "2. Register for an event")
}

func TestVolunteerMenu_ListApprovedEvents(t *testing.T) {
	eventsSvc := new(MockEventService)
	eventsSvc.On("ListApproved", mock.Anything).Return([]events.Event{
		{ID: 4, Name: "Beach Cleanup", Status: lifecycle.StatusApproved, Organizer: approvedUser(3, "org", "ORGANIZATION")},
	}, nil)
	handler := NewVolunteerHandler(eventsSvc, "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=1", nil)
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	var got []EventResponse
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "APPROVED", got[0].Status)
}

func TestVolunteerMenu_RegisterNeedsEventID(t *testing.T) {
	handler := NewVolunteerHandler(new(MockEventService), "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=2", nil)
	req = withCaller(req, approvedUser(7, "bob", "VOLUNTEER"))
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "eventId")
}

func TestVolunteerMenu_Register(t *testing.T) {
	eventsSvc := new(MockEventService)
	eventsSvc.On("Register", mock.Anything, int64(4), "bob").Return(events.Event{
		ID: 4, Name: "Beach Cleanup", Status: lifecycle.StatusApproved,
	}, nil)
	handler := NewVolunteerHandler(eventsSvc, "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=2&eventId=4", nil)
	req = withCaller(req, approvedUser(7, "bob", "VOLUNTEER"))
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "You have successfully registered for the event: Beach Cleanup")
	eventsSvc.AssertExpectations(t)
}

func TestVolunteerMenu_RegisterDuplicate(t *testing.T) {
	eventsSvc := new(MockEventService)
	eventsSvc.On("Register", mock.Anything, int64(4), "bob").Return(events.Event{}, events.ErrAlreadyRegistered)
	handler := NewVolunteerHandler(eventsSvc, "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=2&eventId=4", nil)
	req = withCaller(req, approvedUser(7, "bob", "VOLUNTEER"))
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestVolunteerMenu_RegisterEventNotFound(t *testing.T) {
	eventsSvc := new(MockEventService)
	eventsSvc.On("Register", mock.Anything, int64(99), "bob").Return(events.Event{}, events.ErrEventNotFound)
	handler := NewVolunteerHandler(eventsSvc, "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=2&eventId=99", nil)
	req = withCaller(req, approvedUser(7, "bob", "VOLUNTEER"))
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestVolunteerMenu_Exit(t *testing.T) {
	handler := NewVolunteerHandler(new(MockEventService), "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=3", nil)
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Goodbye")
}

func TestVolunteerMenu_InvalidOption(t *testing.T) {
	handler := NewVolunteerHandler(new(MockEventService), "test")

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu?option=0", nil)
	res := httptest.NewRecorder()
	handler.Menu(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Invalid option")
}
