// Package server provides the HTTP JSON API for household footprint assessments.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/terrago/carbon-advisor/internal/db"
	"github.com/terrago/carbon-advisor/internal/pipeline"
	"github.com/terrago/carbon-advisor/internal/rewriting"
	"github.com/terrago/carbon-advisor/internal/server/middleware"
	"github.com/terrago/carbon-advisor/internal/server/ratelimit"
	"github.com/terrago/carbon-advisor/internal/types"
)

// Store is the assessment storage the server reads and writes.
// *db.DB satisfies it.
type Store interface {
	pipeline.Saver
	GetAssessment(ctx context.Context, id uuid.UUID) (*types.Assessment, error)
	ListAssessmentsByPostcode(ctx context.Context, postcode string) ([]types.Assessment, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	closeStore  func()
	renderer    rewriting.Renderer
	rateLimiter *ratelimit.Limiter
	logger      zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port int
	// DatabaseURL enables persistence; without it /assessments lookups answer 503.
	DatabaseURL string
	// Renderer defaults to rewriting.FixedRenderer.
	Renderer rewriting.Renderer
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	Logger    zerolog.Logger
}

// maxBodyBytes bounds request bodies; a household profile is a few hundred bytes
const maxBodyBytes = 64 << 10

// New creates a new server instance, connecting to the database when one is configured
func New(ctx context.Context, cfg Config) (*Server, error) {
	var (
		store      Store
		closeStore func()
	)
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		store = database
		closeStore = database.Close
	}

	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig()
	}

	s := newServer(store, cfg.Renderer, ratelimit.NewLimiter(rateCfg), cfg.Logger)
	s.closeStore = closeStore
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // rewriting may wait on a text generation provider
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires routes and middleware around the given collaborators
func newServer(store Store, renderer rewriting.Renderer, limiter *ratelimit.Limiter, logger zerolog.Logger) *Server {
	if renderer == nil {
		renderer = rewriting.FixedRenderer{}
	}
	s := &Server{
		store:       store,
		renderer:    renderer,
		rateLimiter: limiter,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /footprint", s.handleFootprint)
	mux.HandleFunc("POST /actions", s.handleActions)
	mux.HandleFunc("POST /assessments", s.handleCreateAssessment)
	mux.HandleFunc("GET /assessments", s.handleListAssessments)
	mux.HandleFunc("GET /assessments/{id}", s.handleGetAssessment)

	s.handler = middleware.RequestID(logger)(middleware.Logging(middleware.CORS(s.withRateLimit(mux))))
	return s
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves requests until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", s.httpServer.Addr).
			Str("renderer", s.renderer.Name()).
			Bool("storage", s.store != nil).
			Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

// Close releases the rate limiter and the database pool
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeStore != nil {
		s.closeStore()
		s.closeStore = nil
	}
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID returns the client IP from RemoteAddr.
// X-Forwarded-For is ignored because it is client controlled.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.UTC().Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := max(1, int(math.Ceil(info.RetryAfter.Seconds())))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	zerolog.Ctx(r.Context()).Warn().
		Str("client", extractClientID(r)).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, r, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse maps err to a status code and writes it as a JSON error
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	body := publicError(err, status)
	body.RequestID = middleware.GetRequestID(r)
	s.jsonResponse(w, r, status, body)
}
