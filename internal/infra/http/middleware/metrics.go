package middleware

import (
	"net/http"
	"strconv"
	"time"

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

	statusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_status_updates_total",
			Help: "Total number of project status updates",
		},
		[]string{"category"},
	)

	proposalsSigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_proposals_signed_total",
			Help: "Total number of proposals signed and archived",
		},
	)

	documentsUploaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_documents_uploaded_total",
			Help: "Total number of contact documents uploaded",
		},
		[]string{"doc_type"},
	)

	changeEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_change_events_published_total",
			Help: "Total number of change events published to the broker",
		},
		[]string{"table"},
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

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordStatusUpdate(category string) {
	statusUpdates.WithLabelValues(category).Inc()
}

func RecordProposalSigned() {
	proposalsSigned.Inc()
}

func RecordDocumentUpload(docType string) {
	documentsUploaded.WithLabelValues(docType).Inc()
}

func RecordChangeEvent(table string) {
	changeEventsPublished.WithLabelValues(table).Inc()
}
