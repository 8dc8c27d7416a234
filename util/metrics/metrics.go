// Package metrics holds the Prometheus collectors of the booking service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_rate_limit_hits_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)

	// Security metrics
	FailedLoginAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_failed_login_attempts_total",
			Help: "Logins rejected for unknown user or wrong password",
		},
	)

	// Booking metrics
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"result"}, // "ok", "no_availability", "train_not_found", "error"
	)

	SeatAuditViolations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_seat_audit_violations",
			Help: "Trains found inconsistent by the last seat audit",
		},
	)
)

// RecordHTTPRequest records one served request. route is the registered
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordBooking(result string) {
	BookingsTotal.WithLabelValues(result).Inc()
}
