// Package api wires the operational HTTP routes: health/metrics, debug
// profiling, and the middleware shared by every route.
package api

import (
	"context"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"
)

// defaultProfileLimit keeps sampling endpoints under a 10s write timeout.
const defaultProfileLimit = 5 * time.Second

// Durations net/http/pprof samples for when ?seconds= is absent.
const (
	pprofProfileSeconds = 30
	pprofTraceSeconds   = 1
)

// Server wires operational HTTP routes.
type Server struct {
	healthHandler *HealthHandler
	debug         bool
	profileLimit  time.Duration
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithDebug exposes /debug/pprof/ when enabled.
func WithDebug(enabled bool) Option {
	return func(s *Server) {
		s.debug = enabled
	}
}

// WithProfileLimit caps the ?seconds= of /debug/pprof/profile and
// /debug/pprof/trace. It must stay below the HTTP server's WriteTimeout,
// otherwise pprof refuses the request. Limits under a second are ignored.
func WithProfileLimit(limit time.Duration) Option {
	return func(s *Server) {
		if limit >= time.Second {
			s.profileLimit = limit
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(),
		profileLimit:  defaultProfileLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))

	if s.debug {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", limitProfileSeconds(s.profileLimit, pprofProfileSeconds, pprof.Profile))
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", limitProfileSeconds(s.profileLimit, pprofTraceSeconds, pprof.Trace))
	}
}

// limitProfileSeconds caps ?seconds= at limit. A missing or malformed value
// counts as defaultSeconds, which is what the pprof handler would use.
func limitProfileSeconds(limit time.Duration, defaultSeconds float64, next http.HandlerFunc) http.HandlerFunc {
	maxSeconds := limit.Seconds()
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sec, err := strconv.ParseFloat(q.Get("seconds"), 64)
		if err != nil || sec <= 0 {
			sec = defaultSeconds
		}
		if sec > maxSeconds {
			q.Set("seconds", strconv.FormatFloat(maxSeconds, 'f', -1, 64))
			r = r.Clone(r.Context())
			r.URL.RawQuery = q.Encode()
		}
		next(w, r)
	}
}
