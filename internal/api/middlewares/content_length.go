package middlewares

import (
	"net/http"

	"github.com/yieldward/yield-ward-service/internal/config"
)

// ContentLengthMiddleware rejects request bodies above the configured limit.
// Bodies without a declared length are capped while being read.
func ContentLengthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	limit := cfg.Server.MaxContentLength
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost || r.Method == http.MethodPut {
				if r.ContentLength > limit {
					http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
