package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "exercise_tracker"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Total number of users registered",
		},
	)

	ExercisesLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exercises_logged_total",
			Help:      "Total number of exercises logged",
		},
	)

	// HandlerErrorsTotal counts failures converted to an error payload.
	// The HTTP status is 200 for all of them, so they never show up in
	// HTTPRequestsTotal as errors.
	HandlerErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_errors_total",
			Help:      "Total number of handler level failures by operation",
		},
		[]string{"operation"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of per-user log exports by result",
		},
		[]string{"result"},
	)
)
