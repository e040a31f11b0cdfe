package handlers

import (
	"net/http"

	"github.com/yieldward/yield-ward-service/internal/observability/tracing"
	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/types"
)

type eventsPage struct {
	events []services.EventPublic
	next   string
}

// GetEvents godoc
// @Summary List archived events
// @Description Pages through the events relayed to the archive, newest first.
// @Produce json
// @Param type query string false "Only events of this type"
// @Param pagination_key query string false "Key of the next page"
// @Success 200 {object} PublicResponse[[]services.EventPublic] "Events"
// @Failure 400 {object} types.Error "Invalid pagination key"
// @Router /v1/events [get]
func (h *Handler) GetEvents(request *http.Request) (*Result, *types.Error) {
	ctx := request.Context()
	eventType := request.URL.Query().Get("type")
	page, err := tracing.WrapWithSpan(ctx, "FindEvents", func() (*eventsPage, error) {
		events, next, err := h.services.GetEvents(ctx, eventType, parsePaginationQuery(request))
		if err != nil {
			return nil, err
		}
		return &eventsPage{events: events, next: next}, nil
	})
	if err != nil {
		return nil, err.(*types.Error)
	}
	return NewResultWithPagination(page.events, page.next), nil
}
