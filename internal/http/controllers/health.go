package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/kish38/paas-api/internal/domain/repository"
	httpx "github.com/kish38/paas-api/internal/http"
	"github.com/kish38/paas-api/internal/observability/logger"
)

// HealthController expone liveness y readiness.
type HealthController struct {
	store repository.Store
}

// Healthz maneja GET /healthz. Responde siempre 200: el proceso vive.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz. Verifica la capa de persistencia con un
// timeout corto; si no responde, 503.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.Ping(ctx); err != nil {
		logger.From(r.Context()).Warn("readiness check falló",
			logger.Layer("controller"), logger.Err(err))
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"store":  "unavailable",
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  "ok",
	})
}
