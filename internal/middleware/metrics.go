package middleware

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    httpRequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "http_requests_total",
            Help: "Total number of HTTP requests",
        },
        []string{"method", "endpoint", "status"},
    )

    httpRequestDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Name:    "http_request_duration_seconds",
            Help:    "HTTP request duration in seconds",
            Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
        },
        []string{"method", "endpoint"},
    )

    httpRequestsInFlight = promauto.NewGauge(
        prometheus.GaugeOpts{
            Name: "http_requests_in_flight",
            Help: "Number of HTTP requests currently being processed",
        },
    )

    cacheLookups = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "report_cache_lookups_total",
            Help: "Report response cache lookups by result",
        },
        []string{"result"},
    )
)

// Metrics records request count, latency and in-flight requests, labelled
// by the route template rather than the raw path.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            httpRequestsInFlight.Inc()
            defer httpRequestsInFlight.Dec()

            err := next(c)
            if err != nil {
                c.Error(err)
            }

            endpoint := c.Path()
            if endpoint == "" {
                endpoint = "unknown"
            }
            status := strconv.Itoa(c.Response().Status)
            httpRequestsTotal.WithLabelValues(c.Request().Method, endpoint, status).Inc()
            httpRequestDuration.WithLabelValues(c.Request().Method, endpoint).Observe(time.Since(start).Seconds())
            return nil
        }
    }
}
