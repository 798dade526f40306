package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "galeri",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "galeri",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	breadcrumbResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "galeri",
			Subsystem: "breadcrumb",
			Name:      "resolutions_total",
			Help:      "Breadcrumb trails built, by source (runtime, parent) and outcome.",
		},
		[]string{"source", "outcome"},
	)
)

// Breadcrumb sources and outcomes.
const (
	BreadcrumbSourceRuntime = "runtime"
	BreadcrumbSourceParent  = "parent"

	BreadcrumbMatched  = "matched"
	BreadcrumbNoMatch  = "no_match"
	BreadcrumbResolved = "resolved"
	BreadcrumbConfig   = "config_error"
)

// ObserveBreadcrumb counts one trail resolution.
func ObserveBreadcrumb(source, outcome string) {
	breadcrumbResolutions.WithLabelValues(source, outcome).Inc()
}

// Metrics records request counts and latency per registered Echo route.
// Unrouted requests share the "unmatched" label to keep cardinality flat.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			method := c.Request().Method
			httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
