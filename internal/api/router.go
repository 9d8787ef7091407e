package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/volunteerhub/server/internal/api/handlers"
	"github.com/volunteerhub/server/internal/api/middleware"
	"github.com/volunteerhub/server/internal/auth"
	"github.com/volunteerhub/server/internal/config"
	"github.com/volunteerhub/server/internal/domain/events"
	"github.com/volunteerhub/server/internal/domain/users"
	"github.com/volunteerhub/server/internal/metrics"
	"github.com/volunteerhub/server/internal/storage"
	"github.com/volunteerhub/server/internal/storage/postgres"
)

// userService is the union of what the handlers and the access control gate
// need from the users domain.
type userService interface {
	handlers.UserService
	middleware.Authenticator
}

func NewRouter(cfg config.Config, pool *pgxpool.Pool, logger zerolog.Logger) (http.Handler, error) {
	var repo storage.Repository
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	usersService := users.NewService(repo.Users(), repo.Roles(), logger)
	eventsService := events.NewService(repo.Events(), repo.Users(), logger)

	return buildRouter(cfg, usersService, eventsService, pool, logger), nil
}

// buildRouter wires the route table. Each route declares its role
// requirement here; signup, health, and metrics bypass the gate entirely.
func buildRouter(cfg config.Config, usersService userService, eventsService handlers.EventService, db handlers.Pinger, logger zerolog.Logger) http.Handler {
	env := cfg.Environment
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, "volunteerhub")

	authHandler := handlers.NewAuthHandler(usersService, tokens, env)
	adminHandler := handlers.NewAdminHandler(usersService, eventsService, env)
	orgHandler := handlers.NewOrganizationHandler(eventsService, env)
	volunteerHandler := handlers.NewVolunteerHandler(eventsService, env)

	authenticate := middleware.Authenticate(usersService, tokens, env)
	requireAdmin := middleware.RequireRole(env, auth.RoleAdmin)
	requireOrganization := middleware.RequireRole(env, auth.RoleOrganization)
	requireVolunteer := middleware.RequireRole(env, auth.RoleVolunteer)

	admin := func(h http.HandlerFunc) http.Handler { return authenticate(requireAdmin(h)) }
	organization := func(h http.HandlerFunc) http.Handler { return authenticate(requireOrganization(h)) }
	volunteer := func(h http.HandlerFunc) http.Handler { return authenticate(requireVolunteer(h)) }

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(db))
	mux.Handle("/metrics", metrics.Handler())

	// Credential endpoints are rate limited; every Basic-auth request costs a
	// bcrypt comparison.
	limitAuth := middleware.RateLimit(cfg.RateLimit.AuthPerMinute)
	mux.Handle("/auth/signup", methodMux(map[string]http.Handler{
		http.MethodPost: limitAuth(http.HandlerFunc(authHandler.Signup)),
	}))
	mux.Handle("/auth/login", methodMux(map[string]http.Handler{
		http.MethodGet: limitAuth(authenticate(http.HandlerFunc(authHandler.Login))),
	}))

	mux.Handle("/admin/menu", methodMux(map[string]http.Handler{
		http.MethodGet: admin(adminHandler.Menu),
	}))
	mux.Handle("/admin/approve/{userId}", methodMux(map[string]http.Handler{
		http.MethodPut: admin(adminHandler.ApproveUser),
	}))
	mux.Handle("/admin/approve-event/{eventId}", methodMux(map[string]http.Handler{
		http.MethodPut: admin(adminHandler.ApproveEvent),
	}))

	mux.Handle("/organization/menu", methodMux(map[string]http.Handler{
		http.MethodGet: organization(orgHandler.Menu),
	}))
	mux.Handle("/organization/create-event", methodMux(map[string]http.Handler{
		http.MethodPost: organization(orgHandler.CreateEvent),
	}))
	mux.Handle("/organization/event-volunteers/{eventId}", methodMux(map[string]http.Handler{
		http.MethodGet: organization(orgHandler.EventVolunteers),
	}))
	mux.Handle("/organization/events", methodMux(map[string]http.Handler{
		http.MethodGet: organization(orgHandler.MyEvents),
	}))

	mux.Handle("/volunteer/menu", methodMux(map[string]http.Handler{
		http.MethodGet: volunteer(volunteerHandler.Menu),
	}))

	var handler http.Handler = mux
	handler = middleware.Metrics()(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
