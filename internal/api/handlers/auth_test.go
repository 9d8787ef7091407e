package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
	"github.com/volunteerhub/server/internal/domain/users"
)

func testTokens() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour, "volunteerhub")
}

func TestSignup_Created(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Signup", mock.Anything, users.SignupParams{
		Username: "alice",
		Password: "s3cret-pw",
		FullName: "Alice Doe",
		Email:    "alice@example.com",
		RoleName: "VOLUNTEER",
	}).Return(users.User{
		ID:       1,
		Username: "alice",
		FullName: "Alice Doe",
		Email:    "alice@example.com",
		Role:     users.Role{Name: "VOLUNTEER"},
		Status:   lifecycle.StatusPending,
	}, nil)

	handler := NewAuthHandler(svc, testTokens(), "test")
	body := `{"username":"alice","password":"s3cret-pw","fullName":"Alice Doe","email":"alice@example.com","roleName":"VOLUNTEER"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	res := httptest.NewRecorder()
	handler.Signup(res, req)

	assert.Equal(t, http.StatusCreated, res.Code)

	var got UserResponse
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "PENDING", got.Status)
	assert.NotContains(t, res.Body.String(), "password")
	svc.AssertExpectations(t)
}

func TestSignup_InvalidBody(t *testing.T) {
	svc := new(MockUserService)
	handler := NewAuthHandler(svc, testTokens(), "test")

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{not json"))
	res := httptest.NewRecorder()
	handler.Signup(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_UnknownRole(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Signup", mock.Anything, mock.Anything).Return(users.User{}, users.ErrInvalidRole)

	handler := NewAuthHandler(svc, testTokens(), "test")
	body := `{"username":"alice","password":"s3cret-pw","roleName":"SUPERUSER"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	res := httptest.NewRecorder()
	handler.Signup(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSignup_UsernameTaken(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Signup", mock.Anything, mock.Anything).Return(users.User{}, users.ErrUsernameTaken)

	handler := NewAuthHandler(svc, testTokens(), "test")
	body := `{"username":"alice","password":"s3cret-pw","roleName":"VOLUNTEER"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	res := httptest.NewRecorder()
	handler.Signup(res, req)

	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestLogin_ReturnsMenuAndToken(t *testing.T) {
	svc := new(MockUserService)
	tokens := testTokens()
	handler := NewAuthHandler(svc, tokens, "test")

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req = withCaller(req, approvedUser(7, "bob", "VOLUNTEER"))
	res := httptest.NewRecorder()
	handler.Login(res, req)

	assert.Equal(t, http.StatusOK, res.Code)

	var got LoginResponse
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Contains(t, got.Menu, "Welcome, Volunteer!")
	assert.Equal(t, "bob", got.User.Username)

	claims, err := tokens.Validate(got.Token)
	assert.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)
	assert.Equal(t, string(auth.RoleVolunteer), claims.Role)
}

func TestLogin_MenuMatchesRole(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"ADMIN", "Welcome, Admin!"},
		{"ORGANIZATION", "Welcome, Organization User!"},
		{"VOLUNTEER", "Welcome, Volunteer!"},
	}
	for _, tc := range cases {
		handler := NewAuthHandler(new(MockUserService), testTokens(), "test")
		req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		req = withCaller(req, approvedUser(1, "u", tc.role))
		res := httptest.NewRecorder()
		handler.Login(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		var got LoginResponse
		assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
		assert.Contains(t, got.Menu, tc.want)
	}
}

func TestLogin_NoIdentity(t *testing.T) {
	handler := NewAuthHandler(new(MockUserService), testTokens(), "test")

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	res := httptest.NewRecorder()
	handler.Login(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
