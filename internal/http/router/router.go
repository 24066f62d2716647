// Package router define las rutas HTTP del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kish38/paas-api/internal/cache"
	httpx "github.com/kish38/paas-api/internal/http"
	ctrl "github.com/kish38/paas-api/internal/http/controllers"
	mw "github.com/kish38/paas-api/internal/http/middlewares"
	"github.com/kish38/paas-api/internal/rate"
	"github.com/kish38/paas-api/internal/token"
)

// Deps contiene las dependencias para armar el router.
type Deps struct {
	Controllers *ctrl.Controllers
	Issuer      *token.Issuer
	Actors      *cache.Accounts
	// LoginLimiter es opcional: sin limiter el login no se limita.
	LoginLimiter rate.Limiter
	// Metrics es el handler de /metrics; opcional.
	Metrics http.Handler
}

// New arma el router completo con su cadena de middlewares.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(httpx.WithMetrics(routePattern))

	c := deps.Controllers

	r.Get("/healthz", c.Health.Healthz)
	r.Get("/readyz", c.Health.Readyz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		// Login es el único endpoint público y el único con rate limit.
		r.Group(func(r chi.Router) {
			if deps.LoginLimiter != nil {
				r.Use(mw.WithRateLimit(deps.LoginLimiter, mw.IPPathRateKey))
			}
			r.Post("/auth/login", c.Auth.Login)
		})

		// Todo lo demás requiere un actor autenticado.
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(deps.Issuer, deps.Actors))

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", c.Accounts.List)
				r.Post("/", c.Accounts.Create)
				r.Get("/{id}", c.Accounts.Get)
				r.Delete("/{id}", c.Accounts.Delete)
				r.Put("/{id}/quota", c.Accounts.SetQuota)
			})

			r.Route("/resources", func(r chi.Router) {
				r.Get("/", c.Resources.List)
				r.Post("/", c.Resources.Create)
				r.Get("/{id}", c.Resources.Get)
				r.Put("/{id}", c.Resources.Update)
				r.Delete("/{id}", c.Resources.Delete)
			})
		})
	})

	return r
}

// routePattern devuelve el patrón de ruta de chi para etiquetar
// métricas sin cardinalidad por id.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
