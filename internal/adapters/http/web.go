// Package web exposes the club API over HTTP.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"aiclub/internal/adapters/auth"
	"aiclub/internal/adapters/http/middleware"
	"aiclub/internal/adapters/http/perf"
	accountStore "aiclub/internal/adapters/storage/account"
	activityStore "aiclub/internal/adapters/storage/activity"
	eventStore "aiclub/internal/adapters/storage/event"
	"aiclub/internal/adapters/storage/leaderboard"
	outboxStore "aiclub/internal/adapters/storage/outbox"
	scoreStore "aiclub/internal/adapters/storage/score"
	teamStore "aiclub/internal/adapters/storage/team"
	"aiclub/internal/application/orchestrators"
	"aiclub/internal/config"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	EventStore       eventStore.Store
	TeamStore        teamStore.Store
	ScoreStore       scoreStore.Store
	LeaderboardStore leaderboard.Store
	ActivityStore    activityStore.Store
	OutboxStore      outboxStore.Store
}

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Config    config.Config
	Stores    *Stores
	Tokens    *auth.JWTIssuer
	Collector *perf.Collector               // optional
	Outbox    *orchestrators.OutboxProcessor // optional; nil gets a processor without executors
	// GenerateID and Now default to uuid.NewString and time.Now.
	GenerateID func() string
	Now        func() time.Time
}

// Server routes API requests to orchestrators and projections.
type Server struct {
	cfg       config.Config
	stores    *Stores
	tokens    *auth.JWTIssuer
	collector *perf.Collector
	outbox    *orchestrators.OutboxProcessor
	newID     func() string
	now       func() time.Time
	limiter   *middleware.RateLimiter
	handler   http.Handler
}

// NewServer wires routes and the middleware chain.
// PRE: d.Stores and d.Tokens are non-nil
// POST: Handler() is ready to serve; Close releases the rate limiter
func NewServer(d Deps) (*Server, error) {
	if d.Stores == nil || d.Tokens == nil {
		return nil, errors.New("web: stores and token issuer are required")
	}
	csrfKey, err := d.Config.CSRFKeyBytes()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       d.Config,
		stores:    d.Stores,
		tokens:    d.Tokens,
		collector: d.Collector,
		outbox:    d.Outbox,
		newID:     d.GenerateID,
		now:       d.Now,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.outbox == nil && d.Stores.OutboxStore != nil {
		s.outbox = orchestrators.NewOutboxProcessor(d.Stores.OutboxStore, nil)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.limiter = middleware.NewRateLimiter(d.Config.RateLimitPerSecond, time.Second)

	// Applied inner to outer: the rate limiter sees every request first.
	s.handler = middleware.Chain(mux,
		middleware.CSRF(middleware.CSRFOptions{Key: csrfKey, Secure: d.Config.IsProduction()}),
		middleware.SecurityHeaders,
		middleware.Timing(d.Collector, d.Config.SlowRequestMs),
		middleware.RateLimit(s.limiter),
	)
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Close stops background work owned by the server.
func (s *Server) Close() { s.limiter.Stop() }

// registerRoutes maps every API route to its gate and handler.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	authed := middleware.Authenticate(s.tokens)
	admin := func(h http.HandlerFunc) http.Handler { return authed(middleware.RequireAdmin(h)) }
	super := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireSuperAdmin(s.cfg.SuperAdminEmail)(h))
	}
	member := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("GET /api/auth/me", member(s.handleMe))

	mux.Handle("GET /api/users", member(s.handleListUsers))
	mux.Handle("PUT /api/users/{id}/role", super(s.handleChangeRole))

	mux.Handle("GET /api/events", member(s.handleListEvents))
	mux.Handle("POST /api/events", admin(s.handleCreateEvent))
	mux.Handle("PUT /api/events/{id}", admin(s.handleUpdateEvent))
	mux.Handle("DELETE /api/events/{id}", admin(s.handleDeleteEvent))

	mux.Handle("GET /api/events/{eventId}/teams", member(s.handleListTeams))
	mux.Handle("POST /api/events/{eventId}/teams", member(s.handleCreateTeam))
	mux.Handle("DELETE /api/teams/{id}", member(s.handleDeleteTeam))

	mux.Handle("POST /api/scores", admin(s.handleAssignScore))

	mux.Handle("GET /api/leaderboard/event/{eventId}", member(s.handleEventLeaderboard))
	mux.Handle("GET /api/leaderboard/overall", member(s.handleOverallLeaderboard))
	mux.Handle("GET /api/leaderboard/team-history/{teamId}", member(s.handleTeamHistory))

	mux.Handle("GET /api/activities", member(s.handleListActivities))
	mux.Handle("POST /api/activities", super(s.handleCreateActivity))
	mux.Handle("PUT /api/activities/{id}", super(s.handleUpdateActivity))
	mux.Handle("DELETE /api/activities/{id}", super(s.handleDeleteActivity))
	mux.Handle("POST /api/activities/{id}/book", member(s.handleBookSeat))
	mux.Handle("DELETE /api/activities/{id}/book", member(s.handleCancelBooking))
	mux.Handle("GET /api/activities/{id}/bookings", admin(s.handleListBookings))

	mux.Handle("GET /api/admin/perf", super(s.handlePerf))
	mux.Handle("GET /api/admin/outbox", super(s.handleListOutbox))
	mux.Handle("POST /api/admin/outbox/{id}/retry", super(s.handleRetryOutbox))
	mux.Handle("POST /api/admin/outbox/{id}/abandon", super(s.handleAbandonOutbox))

	mux.HandleFunc("/", s.handleNotFound)
}
