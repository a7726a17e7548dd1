package middleware

import (
	"log"
	"net"
	"net/http"
	"time"

	"stayhub/internal/common"

	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window per-IP limiter backed by redis, used on the
// credential endpoints. It fails open: if redis is unreachable the request
// goes through.
func RateLimit(rdb *redis.Client, window time.Duration, max int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ip = host
			}
			key := "ratelimit:" + r.URL.Path + ":" + ip

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Printf("WARN: rate limiter unavailable: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := rdb.Expire(r.Context(), key, window).Err(); err != nil {
					// Without a TTL the counter would never reset and the
					// IP would stay limited for good. Drop the key and let
					// the request through instead.
					log.Printf("WARN: rate limiter window not set: %v", err)
					rdb.Del(r.Context(), key)
					next.ServeHTTP(w, r)
					return
				}
			}
			if count > int64(max) {
				common.RespondWithError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
