// Package prom exposes the service's Prometheus metrics.
package prom

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mpeshwe/TaskManager/internal/api"
)

// Namespace prefixes every metric name.
const Namespace = "taskmanager"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// CascadeGroupDeletions counts groups removed because their last member was deleted.
	CascadeGroupDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "users",
		Name:      "cascade_group_deletions_total",
		Help:      "Groups deleted because their last member was deleted.",
	})
)

// Time returns a function that observes the time elapsed since Time was called.
//
//	defer prom.Time(histogram.WithLabelValues("GET"))()
func Time(o prometheus.Observer) func() {
	start := time.Now()
	return func() { o.Observe(time.Since(start).Seconds()) }
}

// Middleware records a request count and latency for every routed request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			defer Time(requestDuration.WithLabelValues(c.Request().Method, route))()

			err := next(c)
			code := c.Response().Status
			if err != nil {
				// The error handler has not run yet; report the status it will write.
				code = api.StatusCode(err)
			}
			requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(code)).Inc()
			return err
		}
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
