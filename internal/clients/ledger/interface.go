package ledger

import (
	"context"
	"net/http"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// LedgerClientInterface executes value movements on the home ledger. key
// identifies the instruction so that a retried call is applied once.
type LedgerClientInterface interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() int
	GetHttpClient() *http.Client
	GetDefaultHeaders() map[string]string
	Mint(ctx context.Context, key, token, recipient string, amount string) (*LedgerResponse, *types.Error)
	Burn(ctx context.Context, key, token string, amount string) (*LedgerResponse, *types.Error)
	Transfer(ctx context.Context, key, token, recipient string, amount string) (*LedgerResponse, *types.Error)
}
