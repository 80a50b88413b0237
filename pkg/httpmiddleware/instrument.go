package httpmiddleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument returns a middleware that records a request counter and a
// duration histogram for every request, attributed by method and status
// class. Per-route span instrumentation is left to otelhttp; this covers the
// metrics side.
func Instrument(service string, mp metric.MeterProvider) Middleware {
	meter := mp.Meter(service)

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Completed HTTP requests"))
	if err != nil {
		return noopMiddleware
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"))
	if err != nil {
		return noopMiddleware
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			attrs := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.Int("http.status_code", rec.status),
			)
			requests.Add(r.Context(), 1, attrs)
			duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
		})
	}
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
