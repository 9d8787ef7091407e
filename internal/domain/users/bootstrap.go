package users

import (
	"context"
	"fmt"

	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/domain/lifecycle"
)

// BootstrapParams holds the default admin credentials.
type BootstrapParams struct {
	Username string
	Password string
	FullName string
	Email    string
}

// Bootstrap is the idempotent startup routine: it ensures the fixed role set
// exists and creates the default admin account, directly APPROVED, if it is
// missing. Every insert is guarded by an existence check so re-running it is
// safe.
func (s *Service) Bootstrap(ctx context.Context, params BootstrapParams) error {
	for _, role := range auth.Roles() {
		if err := s.roles.Ensure(ctx, string(role)); err != nil {
			return fmt.Errorf("ensure role %s: %w", role, err)
		}
	}

	if params.Username == "" || params.Password == "" {
		s.logger.Warn().Msg("admin bootstrap credentials not fully set; skipping admin account")
		return nil
	}

	exists, err := s.users.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		s.logger.Info().Str("username", params.Username).Msg("default admin already exists")
		return nil
	}

	adminRole, err := s.roles.GetByName(ctx, string(auth.RoleAdmin))
	if err != nil {
		return fmt.Errorf("lookup admin role: %w", err)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = s.users.Create(ctx, User{
		Username:     params.Username,
		PasswordHash: hash,
		FullName:     params.FullName,
		Email:        params.Email,
		Role:         *adminRole,
		Status:       lifecycle.StatusApproved,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	s.logger.Info().Str("username", params.Username).Msg("bootstrapped default admin user")
	return nil
}
