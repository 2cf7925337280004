package middleware

import (
	"net/http"

	"storefront-be/internal/metrics"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware counts every request, every 5xx response and the total
// time spent serving them.
func MetricsMiddleware(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := metrics.StartTimer()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			reg.Inc(metrics.RequestsTotal)
			reg.Counter(metrics.RequestMillis).Add(uint64(timer.Duration().Milliseconds()))
			if rec.statusCode >= http.StatusInternalServerError {
				reg.Inc(metrics.RequestErrors)
			}
		})
	}
}
