package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/observability/tracing"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		logger := log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()

		// every log line of the request carries its trace id
		if traceId := r.Context().Value(tracing.TraceIdKey); traceId != nil {
			logger = logger.With().Interface("traceId", traceId).Logger()
		}

		logger.Debug().Msg("request received")
		r = r.WithContext(logger.WithContext(r.Context()))

		next.ServeHTTP(w, r)

		logEvent := logger.Info()
		if tracingInfo := r.Context().Value(tracing.TracingInfoKey); tracingInfo != nil {
			logEvent = logEvent.Interface("tracingInfo", tracingInfo)
		}
		logEvent.Int64("requestDuration", time.Since(startTime).Milliseconds()).Msg("Request completed")
	})
}
