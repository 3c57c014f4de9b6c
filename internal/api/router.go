// Package api serves the dashboard computations as a headless JSON API for
// scripts and other front ends.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"spacexdash/internal"
	"spacexdash/internal/errors"
	"spacexdash/ports"
)

// Router exposes the dashboard service over chi
type Router struct {
	router    *chi.Mux
	dashboard ports.DashboardService
	logger    *internal.Logger
}

// NewRouter wires middleware and routes around a dashboard service
func NewRouter(dashboard ports.DashboardService) *Router {
	r := &Router{
		router:    chi.NewRouter(),
		dashboard: dashboard,
		logger:    internal.DefaultLogger.With("API"),
	}

	r.setupMiddleware()
	r.setupRoutes()
	return r
}

func (r *Router) setupMiddleware() {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Logger)
	r.router.Use(middleware.Recoverer)
	r.router.Use(middleware.Compress(5))
}

func (r *Router) setupRoutes() {
	r.router.Get("/healthz", r.handleHealth)

	r.router.Route("/api", func(api chi.Router) {
		api.Get("/charts", r.handleCharts)
		api.Get("/summary", r.handleSummary)
		api.Get("/sites", r.handleSites)
		api.Get("/sites/{site}/charts", r.handleSiteCharts)
		api.Get("/controls", r.handleControls)
	})
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func (r *Router) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.logger.Error("encode response: %v", err)
	}
}

func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		r.logger.Error("%s %s [%s]: %v", req.Method, req.URL.Path, middleware.GetReqID(req.Context()), err)
		message = "internal error"
	}
	r.writeJSON(w, status, map[string]string{"error": message, "code": errors.GetCode(err)})
}
