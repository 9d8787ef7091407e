package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (users.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *MockAuthenticator) GetByUsername(ctx context.Context, username string) (users.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(users.User), args.Error(1)
}

func approvedVolunteer() users.User {
	return users.User{
		ID:       7,
		Username: "bob",
		Role:     users.Role{ID: 3, Name: "VOLUNTEER"},
		Status:   lifecycle.StatusApproved,
	}
}

func okHandler(captured **users.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := UserFromRequest(r); ok {
			*captured = &user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func testTokens() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour, "volunteerhub")
}

func TestAuthenticate_NoCredentials(t *testing.T) {
	svc := new(MockAuthenticator)
	handler := Authenticate(svc, testTokens(), "test")(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.NotEmpty(t, res.Header().Get("WWW-Authenticate"))
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Authenticate", mock.Anything, "bob", "wrong").Return(users.User{}, users.ErrInvalidCredentials)

	handler := Authenticate(svc, testTokens(), "test")(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
	req.SetBasicAuth("bob", "wrong")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthenticate_PendingAccountDeniedRegardlessOfRole(t *testing.T) {
	// A pending user is rejected on every authenticated route, whatever the
	// assigned role.
	for _, role := range []string{"ADMIN", "ORGANIZATION", "VOLUNTEER"} {
		svc := new(MockAuthenticator)
		pending := users.User{
			Username: "carol",
			Role:     users.Role{Name: role},
			Status:   lifecycle.StatusPending,
		}
		svc.On("Authenticate", mock.Anything, "carol", "pw").Return(pending, nil)

		handler := Authenticate(svc, testTokens(), "test")(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
		req.SetBasicAuth("carol", "pw")
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusForbidden, res.Code, "role %s", role)
		assert.Contains(t, res.Body.String(), "pending approval")
	}
}

func TestAuthenticate_ApprovedBasicAuth(t *testing.T) {
	svc := new(MockAuthenticator)
	svc.On("Authenticate", mock.Anything, "bob", "pw").Return(approvedVolunteer(), nil)

	var captured *users.User
	handler := Authenticate(svc, testTokens(), "test")(okHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
	req.SetBasicAuth("bob", "pw")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	if assert.NotNil(t, captured) {
		assert.Equal(t, "bob", captured.Username)
	}
}

func TestAuthenticate_BearerToken(t *testing.T) {
	tokens := testTokens()
	token, err := tokens.Generate("bob", auth.RoleVolunteer)
	assert.NoError(t, err)

	svc := new(MockAuthenticator)
	svc.On("GetByUsername", mock.Anything, "bob").Return(approvedVolunteer(), nil)

	var captured *users.User
	handler := Authenticate(svc, tokens, "test")(okHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	if assert.NotNil(t, captured) {
		assert.Equal(t, int64(7), captured.ID)
	}
}

func TestAuthenticate_InvalidBearerToken(t *testing.T) {
	svc := new(MockAuthenticator)
	handler := Authenticate(svc, testTokens(), "test")(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireRole(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed", func(t *testing.T) {
		handler := RequireRole("test", auth.RoleVolunteer)(inner)
		req := httptest.NewRequest(http.MethodGet, "/volunteer/menu", nil)
		req = req.WithContext(ContextWithUser(req.Context(), approvedVolunteer()))
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		handler := RequireRole("test", auth.RoleAdmin)(inner)
		req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
		req = req.WithContext(ContextWithUser(req.Context(), approvedVolunteer()))
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		handler := RequireRole("test", auth.RoleAdmin)(inner)
		req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}
