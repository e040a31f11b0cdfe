package baseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/types"
)

const maxResponseBytes = 1 << 20

var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

type BaseClient interface {
	GetBaseURL() string
	// Milliseconds.
	GetDefaultRequestTimeout() int
	GetHttpClient() *http.Client
	// Headers sent with every request. Per-request headers take precedence.
	GetDefaultHeaders() map[string]string
}

type BaseClientOptions struct {
	// Milliseconds. Zero keeps the client default.
	Timeout int
	Path    string
	Headers map[string]string
}

// SendRequest sends input as JSON and decodes the JSON reply into R. Upstream
// 4xx replies map to client errors and are not worth retrying; transport
// failures, timeouts and 5xx replies map to server errors.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I,
) (*R, *types.Error) {
	if !slices.Contains(allowedMethods, method) {
		return nil, types.NewInternalServiceError(fmt.Errorf("method %s is not allowed", method))
	}
	url := client.GetBaseURL() + opts.Path

	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout != 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
	defer cancel()

	req, err := newRequest(ctx, method, url, input)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	for key, value := range client.GetDefaultHeaders() {
		req.Header.Set(key, value)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestTimeout, types.RequestTimeout,
				fmt.Sprintf("request timeout after %d ms at %s", timeout, url),
			)
		}
		log.Ctx(ctx).Error().Err(err).Str("url", url).Msg("failed to send request")
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.InternalServiceError, fmt.Sprintf("failed to send request to %s", url),
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.InternalServiceError, fmt.Sprintf("failed to read response from %s", url),
		)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, types.NewErrorWithMsg(
			resp.StatusCode, types.InternalServiceError, fmt.Sprintf("upstream error %d from %s", resp.StatusCode, url),
		)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, types.NewErrorWithMsg(
			http.StatusServiceUnavailable, types.InternalServiceError, fmt.Sprintf("rate limited by %s", url),
		)
	case resp.StatusCode >= http.StatusBadRequest:
		log.Ctx(ctx).Warn().Int("status", resp.StatusCode).Str("url", url).Bytes("body", body).Msg("request rejected")
		return nil, types.NewErrorWithMsg(
			resp.StatusCode, types.BadRequest, fmt.Sprintf("client error %d when calling %s", resp.StatusCode, url),
		)
	}

	var output R
	if len(body) == 0 {
		return &output, nil
	}
	if err := json.Unmarshal(body, &output); err != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusBadGateway, types.InternalServiceError, fmt.Sprintf("failed to decode response from %s", url),
		)
	}
	return &output, nil
}

func newRequest[I any](ctx context.Context, method, url string, input *I) (*http.Request, error) {
	if input == nil || (method != http.MethodPost && method != http.MethodPut) {
		return http.NewRequestWithContext(ctx, method, url, nil)
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
