package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
)

// Error types for user domain operations
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid signup request")
)

// Service handles account creation, authentication, and the user half of the
// approval workflow.
type Service struct {
	users    Repository
	roles    RoleRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(users Repository, roles RoleRepository, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		roles:    roles,
		validate: validator.New(),
		logger:   logger.With().Str("component", "users").Logger(),
	}
}

// SignupParams contains the fields required to create a new account.
type SignupParams struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	RoleName string
}

// Signup creates a new PENDING account. The raw password is hashed before it
// reaches storage and is never logged.
func (s *Service) Signup(ctx context.Context, params SignupParams) (User, error) {
	roleName := strings.TrimSpace(params.RoleName)
	if roleName == "" {
		return User{}, fmt.Errorf("%w: role is required", ErrInvalidRole)
	}

	if err := s.validate.Struct(params); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	taken, err := s.users.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return User{}, ErrUsernameTaken
	}

	role, err := s.roles.GetByName(ctx, strings.ToUpper(roleName))
	if err != nil {
		if errors.Is(err, ErrInvalidRole) {
			return User{}, fmt.Errorf("%w: %q", ErrInvalidRole, roleName)
		}
		return User{}, fmt.Errorf("lookup role: %w", err)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, User{
		Username:     params.Username,
		PasswordHash: hash,
		FullName:     params.FullName,
		Email:        params.Email,
		Role:         *role,
		Status:       lifecycle.StatusPending,
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("role", user.Role.Name).
		Msg("user signed up")
	return user, nil
}

// Authenticate resolves a username/password pair to a user record. Unknown
// usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return *user, nil
}

// Approve moves a user from PENDING to APPROVED. Approving an approved user
// returns lifecycle.ErrAlreadyApproved and leaves state unchanged.
func (s *Service) Approve(ctx context.Context, id int64) (User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	next, err := user.Status.Approve()
	if err != nil {
		return User{}, err
	}

	if err := s.users.UpdateStatus(ctx, user.ID, next); err != nil {
		return User{}, fmt.Errorf("update user status: %w", err)
	}
	user.Status = next

	s.logger.Info().Int64("user_id", user.ID).Msg("user approved")
	return *user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	return *user, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

func (s *Service) ListPending(ctx context.Context) ([]User, error) {
	return s.users.ListByStatus(ctx, lifecycle.StatusPending)
}
