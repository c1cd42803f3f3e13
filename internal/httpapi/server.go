package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/watchtower/internal/domain"
	apimw "github.com/hamed0406/watchtower/internal/httpapi/middleware"
	"github.com/hamed0406/watchtower/internal/report"
	"github.com/hamed0406/watchtower/internal/watch"
)

// TargetSource loads the target list. It is called once per invocation so
// nothing carries over between runs.
type TargetSource func() ([]domain.Target, error)

type Server struct {
	Logger  *zap.Logger
	Runner  *watch.Runner
	Targets TargetSource
}

func NewServer(l *zap.Logger, runner *watch.Runner, src TargetSource) *Server {
	return &Server{Logger: l, Runner: runner, Targets: src}
}

// Router mounts the run endpoint behind key auth and a per-IP rate limit.
// No keys means the endpoint is open; rpm <= 0 disables rate limiting.
func (s *Server) Router(keys []string, rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(rpm, burst))
		r.Use(apimw.RequireKey(keys))
		r.Get("/api/check", s.handleCheck)
		r.Post("/api/check", s.handleCheck)
	})

	return r
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	ts, err := s.Targets()
	if err != nil {
		s.Logger.Error("targets_load_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// a caller hanging up must not cut the sweep short
	ctx := context.WithoutCancel(r.Context())
	res, err := s.Runner.Run(ctx, ts)
	if err != nil {
		s.Logger.Error("sweep_config_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := report.Write(w, res.Summary); err != nil {
		s.Logger.Warn("write_summary_failed", zap.String("run_id", res.RunID), zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
