package http

import (
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"foodwaste/internal/core"
	applog "foodwaste/internal/log"
	"foodwaste/internal/middleware/ratelimit"
	"foodwaste/internal/middleware/security"
	"foodwaste/internal/middleware/trace"
	appweb "foodwaste/web"
)

// EntryService is what the handlers need from the service layer.
type EntryService interface {
	ListEntries(ctx context.Context) ([]core.WasteEntry, error)
	GetEntry(ctx context.Context, id string) (core.WasteEntry, error)
	CreateEntry(ctx context.Context, d core.EntryDraft) (core.WasteEntry, error)
	UpdateEntry(ctx context.Context, id string, d core.EntryDraft) (core.WasteEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	Statistics(ctx context.Context) (core.Statistics, error)
	Ping(ctx context.Context) error
}

const defaultRequestTimeout = 7 * time.Second

type Options struct {
	// RateLimitPerMinute caps mutating requests per client IP.
	RateLimitPerMinute int
	// RequestTimeout bounds every store call made while serving a request.
	RequestTimeout time.Duration
	Logger         *applog.Logger
	// TrustedProxies are extra CIDRs whose X-Forwarded-For is believed.
	TrustedProxies []string
}

type Server struct {
	http.Server
	svc            EntryService
	templates      *template.Template
	limiter        *ratelimit.Limiter
	detector       *security.Detector
	tracer         *trace.Middleware
	logger         *applog.Logger
	requestTimeout time.Duration
	now            func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, svc EntryService, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring trusted proxy", applog.FieldError, err)
		}
	}

	s := &Server{
		svc:            svc,
		limiter:        ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:       detector,
		logger:         logger,
		requestTimeout: opts.RequestTimeout,
		now:            time.Now,
	}
	s.tracer = trace.NewMiddleware(logger, detector.ClientIP)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/health", s.handleAPIHealth)
	api.HandleFunc("GET /api/waste-entries", s.handleListEntries)
	api.HandleFunc("POST /api/waste-entries", s.handleCreateEntry)
	api.HandleFunc("GET /api/waste-entries/{id}", s.handleGetEntry)
	api.HandleFunc("PUT /api/waste-entries/{id}", s.handleUpdateEntry)
	api.HandleFunc("DELETE /api/waste-entries/{id}", s.handleDeleteEntry)
	api.HandleFunc("GET /api/statistics", s.handleStatistics)
	api.HandleFunc("/api/", handleAPINotFound)
	mux.Handle("/api/", security.CORS(
		[]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		[]string{"Content-Type", "Authorization", "X-Requested-With"},
	)(api))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /ui/entries", s.handleUICreateEntry)
	mux.HandleFunc("POST /ui/entries/{id}/delete", s.handleUIDeleteEntry)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ClientIP, isMutating, s.onRateLimited)(handler)
	handler = security.Headers(security.DefaultHeadersConfig())(handler)
	handler = applog.Middleware(logger, trace.RequestID)(handler)
	handler = s.detector.Middleware(handler)
	handler = s.tracer.Handler(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func isMutating(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	if strings.HasPrefix(r.URL.Path, "/api/") {
		NewJSONError(http.StatusTooManyRequests, "Too many requests, please try again later.").Write(w)
		return
	}
	htmlError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
}

// storeContext bounds a store call made on behalf of r.
func (s *Server) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

// Shutdown stops background goroutines, then drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
		m := s.tracer.GetMetrics()
		s.logger.Info("HTTP server stopped",
			"requests_served", m.TotalRequests,
			"avg_response_time", m.AverageResponseTime.String(),
			"rate_limited", s.limiter.GetMetrics().Rejected,
			"suspicious_requests", s.detector.SuspiciousCount())
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleReady reports 503 while the store is unreachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	body := readiness{Status: "ready", Checks: map[string]string{"store": "ok"}}
	status := http.StatusOK
	if err := s.svc.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "Readiness check failed", "component", "http", "error", err)
		body = readiness{Status: "not ready", Checks: map[string]string{"store": err.Error()}}
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
