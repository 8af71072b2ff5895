// Package metrics exports Prometheus metrics for the HTTP API and domain events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"COURSEHUB_BACK-END/internal/models"
)

// Metrics holds every collector the service exposes
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	UsersRegistered      prometheus.Counter
	LoginsTotal          *prometheus.CounterVec
	CourseRegistrations  *prometheus.CounterVec
	ContactMessagesTotal prometheus.Counter
}

// New creates the collectors on a private registry together with the Go and process collectors
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		UsersRegistered: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "users_registered_total",
				Help:      "Accounts created",
			},
		),
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		CourseRegistrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "course_registrations_total",
				Help:      "Course registrations by payment status",
			},
			[]string{"payment_status"},
		),
		ContactMessagesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_messages_total",
				Help:      "Contact form messages stored",
			},
		),
	}
}

// Middleware records request count, latency and in-flight requests.
// The path label is the matched ServeMux pattern so ids do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The Record helpers accept a nil receiver so handlers can run without metrics.

func (m *Metrics) RecordUserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

func (m *Metrics) RecordLogin(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordCourseRegistration(paymentStatus string) {
	if m == nil {
		return
	}
	switch paymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusCompleted:
	default:
		// keep the label set bounded
		paymentStatus = "other"
	}
	m.CourseRegistrations.WithLabelValues(paymentStatus).Inc()
}

func (m *Metrics) RecordContactMessage() {
	if m == nil {
		return
	}
	m.ContactMessagesTotal.Inc()
}
