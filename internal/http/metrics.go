// Package http agrupa los helpers compartidos de la capa web: JSON,
// métricas Prometheus y el response writer instrumentado.
package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge

	resourcesCreatedTotal prometheus.Counter
	resourcesDeletedTotal prometheus.Counter
	quotaExceededTotal    prometheus.Counter
)

// RegisterMetrics inicializa las métricas y devuelve el handler de /metrics.
func RegisterMetrics(registry prometheus.Registerer) (http.Handler, error) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		})

		resourcesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resources_created_total",
			Help: "Recursos creados",
		})

		resourcesDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resources_deleted_total",
			Help: "Recursos eliminados",
		})

		quotaExceededTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quota_exceeded_total",
			Help: "Operaciones rechazadas por quota agotada",
		})

		for _, c := range []prometheus.Collector{
			httpRequestsTotal, httpRequestDuration, httpInflight,
			resourcesCreatedTotal, resourcesDeletedTotal, quotaExceededTotal,
		} {
			if err := registry.Register(c); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					metricsErr = err
					return
				}
			}
		}
	})
	if metricsErr != nil {
		return nil, metricsErr
	}

	return promhttp.Handler(), nil
}

// ObserveResourceCreated incrementa el contador de recursos creados.
func ObserveResourceCreated() {
	if resourcesCreatedTotal != nil {
		resourcesCreatedTotal.Inc()
	}
}

// ObserveResourceDeleted incrementa el contador de recursos eliminados.
func ObserveResourceDeleted() {
	if resourcesDeletedTotal != nil {
		resourcesDeletedTotal.Inc()
	}
}

// ObserveQuotaExceeded incrementa el contador de rechazos por quota.
func ObserveQuotaExceeded() {
	if quotaExceededTotal != nil {
		quotaExceededTotal.Inc()
	}
}

// WithMetrics instrumenta cada request: contador, histograma e in-flight.
// routePattern se evalúa después del routing para usar el patrón de ruta
// (no el path crudo) y acotar la cardinalidad de labels.
func WithMetrics(routePattern func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpRequestsTotal == nil {
				next.ServeHTTP(w, r)
				return
			}

			httpInflight.Inc()
			defer httpInflight.Dec()

			sw := &StatusWriter{ResponseWriter: w, Code: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)

			path := routePattern(r)
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.Code)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// StatusWriter captura el status code escrito por el handler.
type StatusWriter struct {
	http.ResponseWriter
	Code  int
	Bytes int
}

func (w *StatusWriter) WriteHeader(code int) {
	w.Code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *StatusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.Bytes += n
	return n, err
}
