package ledger

import (
	"context"
	"fmt"
	"net/http"

	baseclient "github.com/yieldward/yield-ward-service/internal/clients/base"
	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/types"
)

const idempotencyHeader = "Idempotency-Key"

type LedgerRequest struct {
	Token     string `json:"token"`
	Recipient string `json:"recipient,omitempty"`
	Amount    string `json:"amount"`
}

type LedgerResponse struct {
	TxHash string `json:"tx_hash"`
}

type LedgerClient struct {
	config        *config.LedgerConfig
	httpClient    *http.Client
	defaultHeader map[string]string
}

func NewLedgerClient(config *config.LedgerConfig) *LedgerClient {
	httpClient := &http.Client{}
	defaultHeader := map[string]string{
		"Accept": "application/json",
	}
	if config.ApiKey != "" {
		defaultHeader["Authorization"] = fmt.Sprintf("Bearer %s", config.ApiKey)
	}
	return &LedgerClient{
		config,
		httpClient,
		defaultHeader,
	}
}

// Necessary for the BaseClient interface
func (c *LedgerClient) GetBaseURL() string {
	return c.config.Url
}

func (c *LedgerClient) GetDefaultRequestTimeout() int {
	return c.config.Timeout
}

func (c *LedgerClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *LedgerClient) GetDefaultHeaders() map[string]string {
	return c.defaultHeader
}

func (c *LedgerClient) Mint(ctx context.Context, key, token, recipient string, amount string) (*LedgerResponse, *types.Error) {
	return c.post(ctx, "/v1/mint", key, &LedgerRequest{Token: token, Recipient: recipient, Amount: amount})
}

func (c *LedgerClient) Burn(ctx context.Context, key, token string, amount string) (*LedgerResponse, *types.Error) {
	return c.post(ctx, "/v1/burn", key, &LedgerRequest{Token: token, Amount: amount})
}

func (c *LedgerClient) Transfer(ctx context.Context, key, token, recipient string, amount string) (*LedgerResponse, *types.Error) {
	return c.post(ctx, "/v1/transfer", key, &LedgerRequest{Token: token, Recipient: recipient, Amount: amount})
}

func (c *LedgerClient) post(ctx context.Context, path, key string, req *LedgerRequest) (*LedgerResponse, *types.Error) {
	opts := &baseclient.BaseClientOptions{
		Path:    path,
		Headers: map[string]string{idempotencyHeader: key},
	}
	return baseclient.SendRequest[LedgerRequest, LedgerResponse](ctx, c, http.MethodPost, opts, req)
}

// Execute applies one ledger instruction.
func Execute(ctx context.Context, c LedgerClientInterface, key string, in types.LedgerInstruction) *types.Error {
	if in.Amount == nil {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "ledger instruction without amount")
	}
	amount := in.Amount.Dec()
	var err *types.Error
	switch in.Op {
	case types.LedgerMint:
		_, err = c.Mint(ctx, key, in.Token, in.Recipient, amount)
	case types.LedgerBurn:
		_, err = c.Burn(ctx, key, in.Token, amount)
	case types.LedgerTransfer:
		_, err = c.Transfer(ctx, key, in.Token, in.Recipient, amount)
	default:
		err = types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, fmt.Sprintf("unknown ledger op: %s", in.Op))
	}
	return err
}
