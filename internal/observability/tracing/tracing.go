package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TracingContextKey string

const TracingInfoKey = TracingContextKey("requestTracingInfo")
const TraceIdKey = TracingContextKey("requestTraceId")

type SpanDetail struct {
	Name     string
	Duration int64
}

type TracingInfo struct {
	SpanDetails []SpanDetail
}

func (t *TracingInfo) addSpanDetail(detail SpanDetail) {
	t.SpanDetails = append(t.SpanDetails, detail)
}

// AttachTracingIntoContext gives the request a fresh trace id and an empty
// span list.
func AttachTracingIntoContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, TraceIdKey, uuid.New().String())
	return context.WithValue(ctx, TracingInfoKey, &TracingInfo{})
}

// WrapWithSpan times next and records it as a span of the request. Calls
// outside a traced request run untimed.
func WrapWithSpan[Result any](ctx context.Context, name string, next func() (Result, error)) (Result, error) {
	tracingInfo, ok := ctx.Value(TracingInfoKey).(*TracingInfo)
	if !ok {
		log.Ctx(ctx).Debug().Str("span", name).Msg("no tracing info in context")
		return next()
	}

	startTime := time.Now()
	defer func() {
		tracingInfo.addSpanDetail(SpanDetail{Name: name, Duration: time.Since(startTime).Milliseconds()})
	}()

	return next()
}
