package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/volunteerhub/server/internal/api/problem"
	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/domain/users"
)

type contextKeyIdentity string

const identityKey contextKeyIdentity = "identity"

// Authenticator resolves credentials to a user record.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (users.User, error)
	GetByUsername(ctx context.Context, username string) (users.User, error)
}

// Authenticate is the access control gate. It resolves the caller from HTTP
// Basic credentials or a bearer session token, rejects unauthenticated
// requests with 401, and rejects PENDING accounts with 403 before any role
// check runs.
func Authenticate(svc Authenticator, tokens *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := resolveCaller(w, r, svc, tokens, env)
			if !ok {
				return
			}

			// Pending accounts are denied everywhere, regardless of role.
			if user.Status.IsPending() {
				problem.Write(w, r, http.StatusForbidden,
					"https://volunteerhub.dev/problems/forbidden",
					"Forbidden", problem.ErrForbidden, env,
					problem.WithDetail("Access denied: your account is still pending approval."))
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveCaller(w http.ResponseWriter, r *http.Request, svc Authenticator, tokens *auth.JWTManager, env string) (users.User, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))

	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		token, err := auth.BearerToken(header)
		if err != nil {
			writeUnauthorized(w, r, err, env)
			return users.User{}, false
		}
		claims, err := tokens.Validate(token)
		if err != nil {
			writeUnauthorized(w, r, err, env)
			return users.User{}, false
		}
		user, err := svc.GetByUsername(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				writeUnauthorized(w, r, err, env)
			} else {
				problem.Write(w, r, http.StatusInternalServerError,
					"https://volunteerhub.dev/problems/server-error", "Server error", err, env)
			}
			return users.User{}, false
		}
		return user, true
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="volunteerhub"`)
		writeUnauthorized(w, r, problem.ErrUnauthorized, env)
		return users.User{}, false
	}

	user, err := svc.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeUnauthorized(w, r, err, env)
		} else {
			problem.Write(w, r, http.StatusInternalServerError,
				"https://volunteerhub.dev/problems/server-error", "Server error", err, env)
		}
		return users.User{}, false
	}
	return user, true
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, err error, env string) {
	problem.Write(w, r, http.StatusUnauthorized,
		"https://volunteerhub.dev/problems/unauthorized", "Unauthorized", err, env)
}

// RequireRole denies callers whose role does not satisfy the route's
// requirement. Must run after Authenticate.
func RequireRole(env string, allowed ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromRequest(r)
			if !ok {
				writeUnauthorized(w, r, problem.ErrUnauthorized, env)
				return
			}
			if !auth.HasRole(user.Role.Name, allowed...) {
				problem.Write(w, r, http.StatusForbidden,
					"https://volunteerhub.dev/problems/forbidden",
					"Forbidden", problem.ErrForbidden, env,
					problem.WithDetail("Your role does not permit this operation."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ContextWithUser(ctx context.Context, user users.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// UserFromRequest returns the authenticated caller stored by Authenticate.
func UserFromRequest(r *http.Request) (users.User, bool) {
	if r == nil {
		return users.User{}, false
	}
	user, ok := r.Context().Value(identityKey).(users.User)
	return user, ok
}
