package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов"

// RateLimit ограничивает частоту запросов общим token bucket
func RateLimit(rps float64, burst int, logger Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("HTTP: rate limit exceeded method=%s path=%s request_id=%s",
					r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
