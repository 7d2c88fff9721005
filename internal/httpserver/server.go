// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (request IDs, logging, panic recovery, timeouts,
//     JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Word-search endpoints (optional auth): mounted under /wordsearch.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile endpoints: /auth/*, /stats/me, /progress/mine, /games/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the player when a valid token is
//     present; guests can still play and are tracked by an anonymous cookie.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/daily"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/metrics"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/progress"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/store"
)

// Options carries the game settings the server hands to every session.
type Options struct {
	Vocabulary     []string
	Size           int
	AttemptFactor  int
	DailySalt      string
	ClientOrigin   string
	RequestTimeout time.Duration
}

// Server bundles router, session store, DB-backed services and metrics.
type Server struct {
	r        *chi.Mux
	store    store.Store
	db       *sql.DB
	auth     *auth.Service
	progress *progress.Store
	daily    *daily.Store
	metrics  *metrics.Metrics
	opts     Options
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, au *auth.Service, m *metrics.Metrics, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		db:       db,
		auth:     au,
		progress: progress.NewStore(db),
		daily:    daily.NewStore(db),
		metrics:  m,
		opts:     opts,
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // honour X-Forwarded-For
	s.r.Use(requestLogger)                      // zerolog access log
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordsearch-go","endpoints":["/health","/metrics","POST /wordsearch/new","POST /wordsearch/select","POST /wordsearch/check","POST /wordsearch/reset","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", m.Handler())

	// Game endpoints: optional auth (guests can play)
	s.mountWordSearch(s.r.With(au.Optional()))

	// Daily puzzle: optional auth (one result per player per day)
	s.mountDaily(s.r.With(au.Optional()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

// RunJanitor evicts sessions idle for longer than idle, checking every
// interval, until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, interval, idle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n, err := s.store.Expire(ctx, idle)
			if err != nil {
				log.Warn().Err(err).Msg("expire sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("evicted", n).Dur("idle", idle).Msg("expired idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeErr writes a JSON error body with the given status.
func writeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
