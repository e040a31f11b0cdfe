package relayer

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yieldward/yield-ward-service/internal/clients/ledger"
	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/mocks"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

type fakeTransport struct {
	sent []*gmp.Envelope
	err  error
}

func (f *fakeTransport) Send(_ context.Context, envelope *gmp.Envelope) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, envelope)
	return nil
}

type ledgerCall struct {
	op, key, token, recipient, amount string
}

type fakeLedger struct {
	calls []ledgerCall
	err   *types.Error
}

func (f *fakeLedger) GetBaseURL() string                   { return "" }
func (f *fakeLedger) GetDefaultRequestTimeout() int        { return 0 }
func (f *fakeLedger) GetHttpClient() *http.Client          { return nil }
func (f *fakeLedger) GetDefaultHeaders() map[string]string { return nil }

func (f *fakeLedger) record(op, key, token, recipient, amount string) *types.Error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, ledgerCall{op, key, token, recipient, amount})
	return nil
}

func (f *fakeLedger) Mint(_ context.Context, key, token, recipient, amount string) (*ledger.LedgerResponse, *types.Error) {
	return nil, f.record("mint", key, token, recipient, amount)
}

func (f *fakeLedger) Burn(_ context.Context, key, token, amount string) (*ledger.LedgerResponse, *types.Error) {
	return nil, f.record("burn", key, token, "", amount)
}

func (f *fakeLedger) Transfer(_ context.Context, key, token, recipient, amount string) (*ledger.LedgerResponse, *types.Error) {
	return nil, f.record("transfer", key, token, recipient, amount)
}

func newTestStore(t *testing.T) *state.LocalStore {
	t.Helper()
	s, err := state.NewLocalStore(filepath.Join(t.TempDir(), "state.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testConfig() *config.RelayerConfig {
	return &config.RelayerConfig{Interval: 10 * time.Millisecond, BatchSize: 10, MaxAttempts: 2}
}

// seed appends a gmp envelope, a ledger mint and an event, in that order.
func seed(t *testing.T, s state.Store) []uint64 {
	t.Helper()
	var seqs []uint64
	require.NoError(t, s.Update(context.Background(), func(tx *state.Tx) error {
		bodies := []struct {
			kind types.OutboxKind
			body any
		}{
			{types.OutboxGmp, &gmp.Envelope{ActionType: types.ActionStake, ActionID: 1}},
			{types.OutboxLedger, types.LedgerInstruction{
				Op: types.LedgerMint, Token: "ward1lpt", Recipient: "ward1user", Amount: uint256.NewInt(42),
			}},
			{types.OutboxEvent, types.NewEvent("stake").AddUint("id", 1)},
		}
		for _, b := range bodies {
			seq, err := tx.AppendOutbox(b.kind, b.body)
			if err != nil {
				return err
			}
			seqs = append(seqs, seq)
		}
		return nil
	}))
	return seqs
}

func pending(t *testing.T, s state.Store) []state.OutboxRecord {
	t.Helper()
	var records []state.OutboxRecord
	require.NoError(t, s.View(context.Background(), func(tx *state.Tx) error {
		var err error
		records, err = tx.PendingOutbox(100)
		return err
	}))
	return records
}

func TestRelayPending_DeliversEveryKind(t *testing.T) {
	store := newTestStore(t)
	seqs := seed(t, store)
	transport := &fakeTransport{}
	ledgerClient := &fakeLedger{}
	dbClient := mocks.NewDBClient(t)
	dbClient.On("SaveEvent", mock.Anything, seqs[2], mock.MatchedBy(func(e *types.Event) bool {
		id, _ := e.Get("id")
		return e.Type == "stake" && id == "1"
	})).Return(nil).Once()

	r := New(testConfig(), store, transport, ledgerClient, dbClient)
	n, err := r.RelayPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, transport.sent, 1)
	assert.Equal(t, types.ActionStake, transport.sent[0].ActionType)
	require.Len(t, ledgerClient.calls, 1)
	assert.Equal(t, ledgerCall{"mint", idempotencyKey(seqs[1]), "ward1lpt", "ward1user", "42"}, ledgerClient.calls[0])
	assert.Empty(t, pending(t, store))
}

func TestRelayPending_FailureBlocksLaterRecords(t *testing.T) {
	store := newTestStore(t)
	seqs := seed(t, store)
	transport := &fakeTransport{}
	ledgerClient := &fakeLedger{err: types.NewErrorWithMsg(http.StatusBadGateway, types.InternalServiceError, "down")}
	dbClient := mocks.NewDBClient(t)

	r := New(testConfig(), store, transport, ledgerClient, dbClient)
	n, err := r.RelayPending(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, n)

	records := pending(t, store)
	require.Len(t, records, 2)
	assert.Equal(t, seqs[1], records[0].Seq)
	assert.Equal(t, 1, records[0].Attempts)
	assert.Equal(t, 0, records[1].Attempts)
	dbClient.AssertNotCalled(t, "SaveEvent", mock.Anything, mock.Anything, mock.Anything)

	// past max attempts the record stays queued and keeps being retried
	_, err = r.RelayPending(context.Background())
	require.Error(t, err)
	_, err = r.RelayPending(context.Background())
	require.Error(t, err)
	records = pending(t, store)
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].Attempts)

	ledgerClient.err = nil
	dbClient.On("SaveEvent", mock.Anything, seqs[2], mock.Anything).Return(nil).Once()
	n, err = r.RelayPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, pending(t, store))
}

func TestRelayPending_TransportError(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)
	transport := &fakeTransport{err: errors.New("broker unavailable")}

	r := New(testConfig(), store, transport, &fakeLedger{}, mocks.NewDBClient(t))
	n, err := r.RelayPending(context.Background())
	require.ErrorContains(t, err, "broker unavailable")
	assert.Zero(t, n)
	assert.Len(t, pending(t, store), 3)
}

func TestRelayPending_RespectsBatchSize(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)
	transport := &fakeTransport{}
	cfg := testConfig()
	cfg.BatchSize = 1

	r := New(cfg, store, transport, &fakeLedger{}, mocks.NewDBClient(t))
	n, err := r.RelayPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, pending(t, store), 2)
}

func TestStart_DrainsUntilCancelled(t *testing.T) {
	store := newTestStore(t)
	seqs := seed(t, store)
	dbClient := mocks.NewDBClient(t)
	dbClient.On("SaveEvent", mock.Anything, seqs[2], mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(testConfig(), store, &fakeTransport{}, &fakeLedger{}, dbClient).Start(ctx)

	assert.Eventually(t, func() bool {
		return len(pending(t, store)) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
