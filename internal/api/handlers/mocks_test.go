package handlers

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/volunteerhub/server/internal/api/middleware"
	"github.com/volunteerhub/server/internal/domain/events"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, params users.SignupParams) (users.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *MockUserService) Approve(ctx context.Context, id int64) (users.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *MockUserService) ListPending(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]users.User), args.Error(1)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, params events.CreateParams, organizer users.User) (events.Event, error) {
	args := m.Called(ctx, params, organizer)
	return args.Get(0).(events.Event), args.Error(1)
}

func (m *MockEventService) Approve(ctx context.Context, id int64) (events.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(events.Event), args.Error(1)
}

func (m *MockEventService) Register(ctx context.Context, eventID int64, callerUsername string) (events.Event, error) {
	args := m.Called(ctx, eventID, callerUsername)
	return args.Get(0).(events.Event), args.Error(1)
}

func (m *MockEventService) Volunteers(ctx context.Context, eventID int64) ([]users.User, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *MockEventService) ListPending(ctx context.Context) ([]events.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]events.Event), args.Error(1)
}

func (m *MockEventService) ListApproved(ctx context.Context) ([]events.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]events.Event), args.Error(1)
}

func (m *MockEventService) ListByOrganizer(ctx context.Context, organizerID int64) ([]events.Event, error) {
	args := m.Called(ctx, organizerID)
	return args.Get(0).([]events.Event), args.Error(1)
}

func approvedUser(id int64, username, role string) users.User {
	return users.User{
		ID:       id,
		Username: username,
		FullName: "Test User",
		Email:    username + "@example.com",
		Role:     users.Role{Name: role},
		Status:   lifecycle.StatusApproved,
	}
}

// withCaller stores an authenticated identity the way the access gate does.
func withCaller(r *http.Request, user users.User) *http.Request {
	return r.WithContext(middleware.ContextWithUser(r.Context(), user))
}
