// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/op/go-logging"
	"github.com/patricioibar/points-dashboard/aggregator"
	"github.com/patricioibar/points-dashboard/dashboard/common"
	"github.com/patricioibar/points-dashboard/filter"
	"github.com/patricioibar/points-dashboard/pivot"
)

var log = logging.MustGetLogger("log")

type Server struct {
	dashboard *common.Dashboard
	Router    chi.Router
}

func New(d *common.Dashboard) *Server {
	s := &Server{dashboard: d}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLog)
	s.Routes(r)

	s.Router = r
	return s
}

// Routes mounts the dashboard API.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.GetOptions)
		r.Get("/selection/default", s.GetDefaultSelection)
		r.Get("/report", s.GetReport)
		r.Get("/scopes/{scope}/metrics", s.GetScopeMetrics)
		r.Get("/pivots/{kind}", s.GetPivot)
		r.Get("/records", s.GetRecords)
		r.Get("/warnings", s.GetWarnings)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Dashboard listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infof("Shutting down dashboard server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.dashboard.Table().Len(),
	})
}

func (s *Server) GetOptions(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.dashboard.Options(SelectionFromQuery(r)))
}

func (s *Server) GetDefaultSelection(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.dashboard.DefaultSelection())
}

func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.dashboard.Compute(SelectionFromQuery(r)))
}

func (s *Server) GetScopeMetrics(w http.ResponseWriter, r *http.Request) {
	scopes := filter.Apply(s.dashboard.Table(), SelectionFromQuery(r))
	scope, err := scopes.ByName(chi.URLParam(r, "scope"))
	if err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"scope":   scope.Name,
		"rows":    scope.Len(),
		"metrics": aggregator.ComputeMetrics(scope),
	})
}

func (s *Server) GetPivot(w http.ResponseWriter, r *http.Request) {
	kind, err := pivot.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}
	scopes := filter.Apply(s.dashboard.Table(), SelectionFromQuery(r))
	JSON(w, http.StatusOK, pivot.Build(scopes.Final, kind))
}

func (s *Server) GetRecords(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.dashboard.Table().Records)
}

func (s *Server) GetWarnings(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"warnings": s.dashboard.WarningMessages(),
		"stats":    s.dashboard.Stats(),
	})
}

// SelectionFromQuery reads repeated season, month, store and segment query
// parameters. Absent parameters select everything at that stage.
func SelectionFromQuery(r *http.Request) filter.Selection {
	q := r.URL.Query()
	return filter.Selection{
		Seasons:  q["season"],
		Months:   q["month"],
		Stores:   q["store"],
		Segments: q["segment"],
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Errorf("Failed to encode response: %v", err)
		}
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debugf("%s %s %d %s [%s]", r.Method, r.URL.RequestURI(), ww.Status(), time.Since(start), chimw.GetReqID(r.Context()))
	})
}
