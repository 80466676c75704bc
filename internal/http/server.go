package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gastos/internal/log"
	"gastos/internal/middleware/ratelimit"
	"gastos/internal/middleware/security"
	"gastos/internal/middleware/trace"
	"gastos/internal/services"
)

// Server serves the budget JSON API.
type Server struct {
	http.Server
	store  *services.BudgetStore
	logger *log.Logger

	tracer   *trace.Middleware
	detector *security.Detector
	limiter  *ratelimit.Limiter

	shutdownOnce sync.Once
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	rateLimit ratelimit.Config
}

// WithRateLimit overrides the edit rate limit.
func WithRateLimit(cfg ratelimit.Config) Option {
	return func(o *serverOptions) { o.rateLimit = cfg }
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, store *services.BudgetStore, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	o := serverOptions{rateLimit: ratelimit.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		store:    store,
		logger:   logger.WithComponent(log.ComponentHTTP),
		detector: security.NewDetector(),
		limiter:  ratelimit.NewLimiter(o.rateLimit),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/budget", s.handleGetBudget)
	mux.HandleFunc("GET /api/groups", handleGroups)
	mux.HandleFunc("PUT /api/income", s.handleSetIncome)
	mux.HandleFunc("POST /api/entries", s.handleAddEntry)
	mux.HandleFunc("PUT /api/entries/{index}/group", s.handleSetGroup)
	mux.HandleFunc("PUT /api/entries/{index}/{field}", s.handleSetAmount)
	mux.HandleFunc("POST /api/reset", s.handleReset)

	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.requestLogger(r).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		TooManyRequestsError().Write(w)
	})(h)
	h = s.tracer.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.detector.Middleware(s.logger)(h)
	h = log.Middleware(logger)(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Shutdown stops the rate limiter and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type readyView struct {
	Status              string `json:"status"`
	Entries             int    `json:"entries"`
	TotalRequests       int64  `json:"total_requests"`
	FailedRequests      int64  `json:"failed_requests"`
	AverageResponseTime int64  `json:"average_response_us"`
	RateLimited         int64  `json:"rate_limited"`
	Blocked             int64  `json:"blocked"`
}

// handleReady reports readiness along with request counters.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	tm := s.tracer.GetMetrics()
	NewJSONResponse().Body(readyView{
		Status:              "ready",
		Entries:             len(s.store.Snapshot().Entries),
		TotalRequests:       tm.TotalRequests,
		FailedRequests:      tm.FailedRequests,
		AverageResponseTime: tm.AverageResponseTime,
		RateLimited:         s.limiter.GetMetrics().TotalHits,
		Blocked:             s.detector.GetMetrics().BlockedRequests,
	}).Write(w)
}
