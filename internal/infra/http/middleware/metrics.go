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

	analyzerSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_submissions_total",
			Help: "Total number of graded Deal Analyzer submissions",
		},
		[]string{"source", "result"},
	)

	analyzerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_rejections_total",
			Help: "Total number of refused submissions by reason",
		},
		[]string{"reason"},
	)

	benchmarkErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "benchmark_fetch_errors_total",
			Help: "Total number of failed historical-rate lookups",
		},
	)

	offerClicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "offer_clicks_total",
			Help: "Total number of recorded marketplace offer clicks",
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

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSubmission(source, result string) {
	analyzerSubmissions.WithLabelValues(source, result).Inc()
}

func RecordRejection(reason string) {
	analyzerRejections.WithLabelValues(reason).Inc()
}

func RecordBenchmarkError() {
	benchmarkErrors.Inc()
}

func RecordOfferClick() {
	offerClicks.Inc()
}
