// Package httptransport assembles the HTTP surface: middleware stack, health
// and metrics endpoints, and the assessment API. Business logic stays in the
// domain services.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assessmenthandler "fairmeter/internal/assessment/handler"
	platformmetrics "fairmeter/internal/platform/metrics"
	"fairmeter/internal/platform/middleware"
	"fairmeter/pkg/platform/audit"
	"fairmeter/pkg/platform/httputil"
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger      *slog.Logger
	Metrics     *platformmetrics.Metrics
	Assessments *assessmenthandler.Handler
	Validator   middleware.JWTValidator

	// AdminKeyHash guards the operator endpoints; empty keeps them closed.
	AdminKeyHash string
	AuditTrail   audit.Store

	// Health reports backend readiness; nil means always ready.
	Health func(ctx context.Context) error
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientInfo)
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/healthz", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Assessments.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		deps.Assessments.RegisterProtected(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminKey(deps.AdminKeyHash, deps.Logger))
		r.Get("/admin/audit", handleAuditTrail(deps.AuditTrail))
	})

	return r
}

func handleHealth(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleAuditTrail(trail audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if trail == nil {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": []audit.Event{}})
			return
		}
		events, err := trail.Recent(r.Context(), 100)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
	}
}
