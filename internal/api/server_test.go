package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/db"
	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/mocks"
	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

func address(t *testing.T, seed byte) string {
	raw := bytes.Repeat([]byte{seed}, 20)
	data, err := bech32.ConvertBits(raw, 8, 5, true)
	require.NoError(t, err)
	addr, err := bech32.Encode("ward", data)
	require.NoError(t, err)
	return addr
}

type testServer struct {
	handler http.Handler
	db      *mocks.DBClient
	owner   string
	lpt     string
}

func setupServer(t *testing.T) *testServer {
	store, err := state.NewLocalStore(filepath.Join(t.TempDir(), "engine.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	owner, bridge, lpt := address(t, 1), address(t, 2), address(t, 3)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1", Port: 8092, AddressPrefix: "ward",
			AllowedOrigins: []string{"*"}, MaxContentLength: 4096,
		},
		Contract: config.ContractConfig{Owner: owner, Bridge: bridge},
		Bridge:   config.BridgeConfig{ChannelID: "channel-0", GatewayAddress: "gateway", TimeoutSeconds: 60},
	}
	dbClient := mocks.NewDBClient(t)
	svc := services.NewServices(cfg, store, dbClient)
	boot := &config.TokenBootstrap{Tokens: []config.TokenBootstrapEntry{{
		Denom: "uusdc",
		TokenConfig: types.TokenConfig{
			IsStakeEnabled: true, IsUnstakeEnabled: true, Chain: "ethereum",
			EvmYieldContract: "0x00000000000000000000000000000000000000bb", LptAddress: lpt,
		},
	}}}
	require.NoError(t, svc.Bootstrap(context.Background(), boot))

	server, err := New(context.Background(), cfg, svc)
	require.NoError(t, err)
	return &testServer{handler: server.Handler(), db: dbClient, owner: owner, lpt: lpt}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestHealthCheck(t *testing.T) {
	s := setupServer(t)
	s.db.On("Ping", mock.Anything).Return(nil).Once()

	code, body := s.do(t, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Server is up and running", body["data"])
}

func TestStakeThenQuery(t *testing.T) {
	s := setupServer(t)
	user := address(t, 4)

	code, body := s.do(t, http.MethodPost, "/v1/stake",
		`{"sender":"`+user+`","token_denom":"uusdc","funds":[{"denom":"uusdc","amount":"1000"}]}`)
	require.Equal(t, http.StatusOK, code, body)
	events := body["data"].(map[string]any)["events"].([]any)
	require.NotEmpty(t, events)
	assert.Equal(t, "stake", events[0].(map[string]any)["type"])

	code, body = s.do(t, http.MethodGet, "/v1/tokens/uusdc/stakes/1", "")
	require.Equal(t, http.StatusOK, code, body)
	item := body["data"].(map[string]any)
	assert.Equal(t, user, item["user"])
	assert.Equal(t, "1000", item["token_amount"])
	assert.Equal(t, string(types.StakeWaitingExecution), item["action_stage"])

	code, body = s.do(t, http.MethodGet, "/v1/tokens/uusdc/stake-params", "")
	require.Equal(t, http.StatusOK, code, body)
	params := body["data"].(map[string]any)
	assert.EqualValues(t, 1, params["pending_count"])
	assert.EqualValues(t, 2, params["next_id"])
}

func TestStakeRejections(t *testing.T) {
	s := setupServer(t)
	user := address(t, 4)

	code, body := s.do(t, http.MethodPost, "/v1/stake",
		`{"sender":"`+user+`","token_denom":"uatom","funds":[{"denom":"uusdc","amount":"1"}]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(types.InvalidToken), body["errorCode"])

	code, body = s.do(t, http.MethodPost, "/v1/stake", `{"sender":"x","unexpected":true}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(types.BadRequest), body["errorCode"])

	code, body = s.do(t, http.MethodPost, "/v1/stake",
		`{"sender":"`+user+`","funds":[{"denom":"uusdc","amount":"-5"}]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(types.BadRequest), body["errorCode"])

	code, _ = s.do(t, http.MethodPost, "/v1/stake", `{"sender":"`+strings.Repeat("a", 5000)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
}

func TestAdminRequiresOwner(t *testing.T) {
	s := setupServer(t)
	stranger := address(t, 9)

	code, body := s.do(t, http.MethodPost, "/v1/admin/disallow-mint", `{"sender":"`+stranger+`"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, string(types.Unauthorized), body["errorCode"])

	code, _ = s.do(t, http.MethodPost, "/v1/admin/disallow-mint", `{"sender":"`+s.owner+`"}`)
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodGet, "/v1/config", "")
	require.Equal(t, http.StatusOK, code)
	contract := body["data"].(map[string]any)["contract"].(map[string]any)
	assert.Equal(t, false, contract["is_mint_allowed"])
}

func TestTokenLookups(t *testing.T) {
	s := setupServer(t)

	code, body := s.do(t, http.MethodGet, "/v1/tokens/by-lpt?address="+s.lpt, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "uusdc", body["data"].(map[string]any)["denom"])

	code, _ = s.do(t, http.MethodGet, "/v1/tokens/by-lpt", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodGet, "/v1/tokens/by-source?chain=ethereum&address=0xdead", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, string(types.UnknownTokenBySource), body["errorCode"])

	code, _ = s.do(t, http.MethodGet, "/v1/tokens/uusdc/stakes/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetEventsPagination(t *testing.T) {
	s := setupServer(t)
	page := &db.DbResultMap[model.EventDocument]{
		Data: []model.EventDocument{{Seq: 4, Type: "stake", Attributes: []types.Attribute{{Key: "stake_id", Value: "1"}}}},
		PaginationToken: "next-page",
	}
	s.db.On("FindEvents", mock.Anything, "stake", "").Return(page, nil).Once()

	code, body := s.do(t, http.MethodGet, "/v1/events?type=stake", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "next-page", body["pagination"].(map[string]any)["next_key"])
	events := body["data"].([]any)
	require.Len(t, events, 1)
	assert.EqualValues(t, 4, events[0].(map[string]any)["seq"])
}
