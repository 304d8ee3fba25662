package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	auth "github.com/mind-engage/moocloze/internal/auth/middleware"
	"github.com/mind-engage/moocloze/internal/export"
	"github.com/mind-engage/moocloze/internal/metrics"
	"github.com/mind-engage/moocloze/internal/rbac"
)

type RouterOptions struct {
	Service *export.Service
	Auth    *auth.AuthService
	// Credentials for /auth/login; an empty PassHash leaves login unmounted.
	Credentials  auth.Credentials
	AuthRequired bool
	CORSOrigins  []string
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Ready is consulted by /readyz.
	Ready  func(ctx context.Context) error
	Logger *zap.Logger
}

// NewRouter builds the gateway's routes.
func NewRouter(o RouterOptions) chi.Router {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)
	if len(o.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   o.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length", "Content-Disposition", "Location"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if o.Auth != nil && o.Credentials.PassHash != "" {
		r.Post("/auth/login", auth.LoginHandler(o.Auth, o.Credentials))
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		if o.AuthRequired {
			pr.Use(auth.JWTMiddleware(o.Auth))
		} else {
			pr.Use(auth.AssumeRole("local", "author"))
		}

		pr.With(rbac.Require(rbac.PermRender)).
			Post("/render", RenderHandler(o.Service, log))
		pr.With(rbac.Require(rbac.PermRender)).
			Post("/fields/render", RenderFieldHandler(o.Service, log))

		pr.With(rbac.Require(rbac.PermExport)).
			Post("/exports", CreateExportHandler(o.Service, log))
		pr.With(rbac.Require(rbac.PermRead)).
			Get("/exports", ListExportsHandler(o.Service, log))
		pr.With(rbac.RequireAny(rbac.PermRead, rbac.PermExport)).
			Get("/exports/{id}", DownloadExportHandler(o.Service, log))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if o.Ready != nil {
			if err := o.Ready(r.Context()); err != nil {
				log.Warn("not ready", zap.Error(err))
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	if o.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(o.Gatherer))
	}
	return r
}
