package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	logger "github.com/rs/zerolog"

	"github.com/yieldward/yield-ward-service/internal/api/handlers"
	"github.com/yieldward/yield-ward-service/internal/observability/metrics"
	"github.com/yieldward/yield-ward-service/internal/types"
)

const internalErrorMessage = "Internal service error"

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// toErrorResponse picks the status and body sent for err. Messages of 5xx
// errors are logged and replaced.
func toErrorResponse(r *http.Request, err *types.Error) (int, *ErrorResponse) {
	status := err.StatusCode
	if http.StatusText(status) == "" {
		logger.Ctx(r.Context()).Error().Err(err).Int("status_code", status).Msg("invalid status code")
		status = http.StatusInternalServerError
	}

	res := &ErrorResponse{ErrorCode: err.ErrorCode.String(), Message: err.Error()}
	if status >= http.StatusInternalServerError {
		logger.Ctx(r.Context()).Error().Err(err).Str("errorCode", res.ErrorCode).Msg("request failed with 5xx error")
		res.Message = internalErrorMessage
	}
	return status, res
}

func registerHandler(handlerFunc func(*http.Request) (*handlers.Result, *types.Error)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		// label by route pattern so path parameters do not explode the series
		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		timer := metrics.StartHttpRequestDurationTimer(endpoint)

		result, err := handlerFunc(r)
		status, body := responseFor(r, result, err)
		timer(status)
		writeResponse(w, r, status, body)
	}
}

func responseFor(r *http.Request, result *handlers.Result, err *types.Error) (int, any) {
	if err != nil {
		return toErrorResponse(r, err)
	}
	if result == nil || http.StatusText(result.Status) == "" {
		logger.Ctx(r.Context()).Error().Msg("invalid success response, error returned")
		return http.StatusInternalServerError, &ErrorResponse{
			ErrorCode: types.InternalServiceError.String(),
			Message:   internalErrorMessage,
		}
	}
	return result.Status, result.Data
}

func writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, res any) {
	respBytes, err := json.Marshal(res)
	if err != nil {
		logger.Ctx(r.Context()).Err(err).Msg("failed to marshal response")
		http.Error(w, "Failed to process the request. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respBytes) // nolint:errcheck
}
