package handlers

import (
	"net/http"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// HealthCheck godoc
// @Summary Health check
// @Description Pings the engine store and the archive database.
// @Produce json
// @Success 200 {object} PublicResponse[string] "Server is up and running"
// @Failure 500 {object} types.Error "A dependency is unavailable"
// @Router /healthcheck [get]
func (h *Handler) HealthCheck(request *http.Request) (*Result, *types.Error) {
	if err := h.services.DoHealthCheck(request.Context()); err != nil {
		return nil, types.NewInternalServiceError(err)
	}

	return NewResult("Server is up and running"), nil
}
