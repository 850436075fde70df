package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mapeo_leads_submitted_total",
			Help: "Total number of leads submitted by agents",
		},
	)

	documentUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapeo_identity_documents_uploaded_total",
			Help: "Identity document uploads by outcome",
		},
		[]string{"outcome"},
	)

	verificationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapeo_verification_transitions_total",
			Help: "Verification status transitions",
		},
		[]string{"from", "to"},
	)

	pendingVerifications = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mapeo_verifications_pending",
			Help: "Agents waiting for identity review",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern usa o padrão da rota do chi (/api/leads/{id}) para não explodir a cardinalidade.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordLeadSubmitted() {
	leadsSubmitted.Inc()
}

func RecordDocumentUpload(outcome string) {
	documentUploads.WithLabelValues(outcome).Inc()
}

func RecordVerificationTransition(from, to string) {
	verificationTransitions.WithLabelValues(from, to).Inc()
}

func SetPendingVerifications(n int) {
	pendingVerifications.Set(float64(n))
}
