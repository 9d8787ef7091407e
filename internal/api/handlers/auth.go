package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/volunteerhub/server/internal/api/middleware"
	"github.com/volunteerhub/server/internal/api/problem"
	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/domain/users"
)

// UserService defines the user operations the HTTP layer depends on.
type UserService interface {
	Signup(ctx context.Context, params users.SignupParams) (users.User, error)
	Approve(ctx context.Context, id int64) (users.User, error)
	List(ctx context.Context) ([]users.User, error)
	ListPending(ctx context.Context) ([]users.User, error)
}

// AuthHandler serves signup and login.
type AuthHandler struct {
	users  UserService
	tokens *auth.JWTManager
	env    string
}

func NewAuthHandler(users UserService, tokens *auth.JWTManager, env string) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, env: env}
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	RoleName string `json:"roleName"`
}

// Signup handles POST /auth/signup. New accounts start PENDING.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest,
			"https://volunteerhub.dev/problems/validation-error", "Invalid request body", err, h.env)
		return
	}

	user, err := h.users.Signup(r.Context(), users.SignupParams{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		RoleName: req.RoleName,
	})
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

type LoginResponse struct {
	Menu  string       `json:"menu"`
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Login handles GET /auth/login. The caller is already resolved by the
// authentication middleware; the response carries the role-specific menu and
// a bearer token for subsequent requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromRequest(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized,
			"https://volunteerhub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.env)
		return
	}

	token, err := h.tokens.Generate(user.Username, auth.NormalizeRole(user.Role.Name))
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError,
			"https://volunteerhub.dev/problems/server-error", "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Menu:  menuForRole(user),
		Token: token,
		User:  toUserResponse(user),
	})
}

func menuForRole(user users.User) string {
	switch auth.NormalizeRole(user.Role.Name) {
	case auth.RoleAdmin:
		return adminMenuText
	case auth.RoleOrganization:
		return organizationMenuText
	case auth.RoleVolunteer:
		return volunteerMenuText
	default:
		return "Welcome, " + user.Username + "! You are logged in."
	}
}
