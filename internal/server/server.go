// Package server exposes the tracker over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/enterprise"
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/tracker"
)

// Tracker is the subset of tracker.Service the API serves.
type Tracker interface {
	Enterprises(ctx context.Context, f enterprise.Filter) ([]enterprise.Enterprise, error)
	Enterprise(ctx context.Context, k enterprise.Key) (enterprise.Enterprise, bool, error)
	Directory(ctx context.Context, f company.Filter) ([]model.Company, error)
	Groups(ctx context.Context, f company.Filter) ([]company.GroupedEntry, error)
	Dedupe(ctx context.Context) (company.MergeResult, error)
	News(ctx context.Context) ([]model.NewsItem, error)
	Lists(ctx context.Context) ([]model.CompanyList, error)
	AddToList(ctx context.Context, listName string, companies []string) (model.CompanyList, error)
	Status(ctx context.Context) (tracker.Status, error)
}

// Server routes API requests to a Tracker.
type Server struct {
	tracker        Tracker
	allowedOrigins []string
}

// New creates a Server. An empty origin list allows any origin.
func New(t Tracker, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{tracker: t, allowedOrigins: allowedOrigins}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/enterprises", s.listEnterprises)
		r.Get("/enterprises/{provenance}/{rank}", s.getEnterprise)
		r.Get("/directory", s.listDirectory)
		r.Get("/directory/groups", s.listGroups)
		r.Post("/directory/dedupe", s.dedupe)
		r.Get("/news", s.listNews)
		r.Get("/lists", s.listLists)
		r.Post("/lists", s.addToList)
		r.Get("/status", s.status)
	})
	return r
}

// requestLogger logs one line per request with zap.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// internalError logs err and hides it from the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("server: request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
