package middlewares

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	httperrors "github.com/kish38/paas-api/internal/http/errors"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/rate"
)

// RateKey deriva la clave de limitación a partir del request.
type RateKey func(r *http.Request) string

// IPPathRateKey separa los límites por IP y endpoint.
func IPPathRateKey(r *http.Request) string {
	return clientIP(r) + "|" + r.URL.Path
}

// WithRateLimit aplica un limitador fixed-window al handler. Si el
// backend del limitador falla, la petición pasa: disponibilidad sobre
// limitación estricta.
func WithRateLimit(limiter rate.Limiter, key RateKey) Middleware {
	if key == nil {
		key = IPPathRateKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), key(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter backend no disponible, dejando pasar",
					logger.Layer("middleware"), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
			if res.WindowTTL > 0 {
				resetAt := time.Now().Add(res.WindowTTL).Unix()
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))
			}

			if !res.Allowed {
				retry := int(res.RetryAfter.Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				httperrors.WriteError(w, httperrors.ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
