package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "hr_records"

var (
	// ---- HTTP ---------------------------------------

	metricsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	metricsRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ---- Domain ---------------------------------------

	metricsLoginEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	LoginSucceeded       = metricsLoginEvents.WithLabelValues("success")
	LoginUnknownUser     = metricsLoginEvents.WithLabelValues("user_not_found")
	LoginInvalidPassword = metricsLoginEvents.WithLabelValues("invalid_password")

	metricsSearchEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "search_index_events_total",
		Help:      "Employee search index events.",
	}, []string{"event"})

	SearchIndexFailures = metricsSearchEvents.WithLabelValues("index_failure")
	SearchFallbacks     = metricsSearchEvents.WithLabelValues("sql_fallback")
)

// Middleware records request counts and latency. Routes are labelled by
// their registered pattern to keep label cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			metricsRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metricsRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the Prometheus exposition format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
