package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
	"askai-shortcut/internal/usecase/ask"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-Id"

	defaultAskInterval = 2 * time.Second
	defaultAskBurst    = 5
)

type askRequest struct {
	ButtonID string `json:"button_id" validate:"omitempty,max=128"`
	PageURL  string `json:"page_url" validate:"required,url,max=4096"`
}

type askResponse struct {
	RequestID string `json:"request_id"`
	ButtonID  string `json:"button_id"`
	TabURL    string `json:"tab_url"`
	Status    string `json:"status"`
}

type errorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

type Config struct {
	Addr string
	// JSONLogs switches request logs from the console format to JSON.
	JSONLogs bool
	// AskRate and AskBurst bound how often /v1/ask may open a tab.
	AskRate  rate.Limit
	AskBurst int
}

// Server exposes the ask flow over HTTP so a browser extension or a shell
// script can trigger it.
//
// Fill attempts outlive the request that started them, so Execute runs
// under the server's base context rather than the request context.
type Server struct {
	cfg      Config
	ask      input.AskExecutor
	settings output.SettingsStore
	gatherer prometheus.Gatherer
	logger   output.LoggerPort
	base     context.Context
	srv      *http.Server
	validate *validator.Validate
	limiter  *rate.Limiter
}

func NewServer(
	base context.Context,
	cfg Config,
	asker input.AskExecutor,
	settings output.SettingsStore,
	gatherer prometheus.Gatherer,
	logger output.LoggerPort,
) *Server {
	if base == nil {
		base = context.Background()
	}
	if cfg.AskRate <= 0 {
		cfg.AskRate = rate.Every(defaultAskInterval)
	}
	if cfg.AskBurst <= 0 {
		cfg.AskBurst = defaultAskBurst
	}
	s := &Server{
		cfg:      cfg,
		ask:      asker,
		settings: settings,
		gatherer: gatherer,
		logger:   logger,
		base:     base,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		limiter:  rate.NewLimiter(cfg.AskRate, cfg.AskBurst),
	}
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	reqLogger := httplog.NewLogger("askai", httplog.Options{
		JSON:    s.cfg.JSONLogs,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(reqLogger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Get("/buttons", s.handleButtons)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.cfg.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleButtons(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Load(r.Context())
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "settings unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, settings.Buttons)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set(requestIDHeader, requestID)
	httplog.LogEntrySetField(r.Context(), "request_id", requestID)

	var body askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{RequestID: requestID, Error: "invalid JSON body"})
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{RequestID: requestID, Error: err.Error()})
		return
	}
	if wait, ok := s.reserveAsk(); !ok {
		w.Header().Set("Retry-After", retryAfter(wait))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{RequestID: requestID, Error: "too many ask requests"})
		return
	}

	res, err := s.ask.Execute(s.base, input.AskRequest{
		ButtonID: body.ButtonID,
		PageURL:  body.PageURL,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("Ask failed", "request_id", requestID, "error", err)
		}
		writeJSON(w, status, errorResponse{RequestID: requestID, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, askResponse{
		RequestID: requestID,
		ButtonID:  res.Button.ID,
		TabURL:    res.TabURL,
		Status:    string(res.Ack.Status),
	})
}

// reserveAsk takes a token when one is available now. Otherwise the
// reservation is returned and the wait until the next token is reported.
func (s *Server) reserveAsk() (time.Duration, bool) {
	r := s.limiter.Reserve()
	if !r.OK() {
		return time.Duration(math.MaxInt64), false
	}
	if d := r.Delay(); d > 0 {
		r.Cancel()
		return d, false
	}
	return 0, true
}

// retryAfter renders a wait as whole seconds, rounded up, at least 1.
func retryAfter(d time.Duration) string {
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ask.ErrEmptyPageURL):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrButtonNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
