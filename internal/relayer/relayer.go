package relayer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/clients/ledger"
	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/db"
	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/observability/metrics"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

// Relayer drains the outbox in sequence order. A record is deleted only after
// its destination accepted it, and a failed record blocks the ones behind it.
type Relayer struct {
	cfg       *config.RelayerConfig
	store     state.Store
	transport gmp.Transport
	ledger    ledger.LedgerClientInterface
	dbClient  db.DBClient
}

func New(
	cfg *config.RelayerConfig, store state.Store, transport gmp.Transport,
	ledgerClient ledger.LedgerClientInterface, dbClient db.DBClient,
) *Relayer {
	return &Relayer{
		cfg:       cfg,
		store:     store,
		transport: transport,
		ledger:    ledgerClient,
		dbClient:  dbClient,
	}
}

// Start relays on every tick until ctx is done.
func (r *Relayer) Start(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopping outbox relayer")
				return
			case <-ticker.C:
				if _, err := r.RelayPending(ctx); err != nil {
					_ = utils.Sleep(ctx, r.cfg.Backoff)
				}
			}
		}
	}()
}

// RelayPending delivers up to one batch and returns how many records left the
// outbox. It stops at the first failure.
func (r *Relayer) RelayPending(ctx context.Context) (int, error) {
	var records []state.OutboxRecord
	err := r.store.View(ctx, func(tx *state.Tx) error {
		var err error
		records, err = tx.PendingOutbox(r.cfg.BatchSize)
		metrics.SetOutboxDepth(tx.OutboxLen())
		return err
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to read outbox")
		return 0, err
	}

	relayed := 0
	for _, record := range records {
		if err := r.deliver(ctx, record); err != nil {
			metrics.RecordRelay(string(record.Kind), metrics.Error)
			record.Attempts++
			logger := log.Ctx(ctx).Warn()
			if record.Attempts >= r.cfg.MaxAttempts {
				logger = log.Ctx(ctx).Error()
			}
			logger.Err(err).
				Uint64("seq", record.Seq).
				Str("kind", string(record.Kind)).
				Int("attempts", record.Attempts).
				Msg("failed to relay outbox record")
			if uerr := r.store.Update(ctx, func(tx *state.Tx) error {
				return tx.SetOutboxRecord(record)
			}); uerr != nil {
				log.Ctx(ctx).Error().Err(uerr).Uint64("seq", record.Seq).Msg("failed to record relay attempt")
			}
			return relayed, err
		}

		if err := r.store.Update(ctx, func(tx *state.Tx) error {
			return tx.DeleteOutbox(record.Seq)
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Uint64("seq", record.Seq).Msg("failed to delete relayed outbox record")
			return relayed, err
		}
		metrics.RecordRelay(string(record.Kind), metrics.Success)
		relayed++
	}
	return relayed, nil
}

func (r *Relayer) deliver(ctx context.Context, record state.OutboxRecord) error {
	switch record.Kind {
	case types.OutboxGmp:
		var envelope gmp.Envelope
		if err := json.Unmarshal(record.Body, &envelope); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		return r.transport.Send(ctx, &envelope)
	case types.OutboxLedger:
		var instruction types.LedgerInstruction
		if err := json.Unmarshal(record.Body, &instruction); err != nil {
			return fmt.Errorf("decode ledger instruction: %w", err)
		}
		if err := ledger.Execute(ctx, r.ledger, idempotencyKey(record.Seq), instruction); err != nil {
			return err
		}
		return nil
	case types.OutboxEvent:
		var event types.Event
		if err := json.Unmarshal(record.Body, &event); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		return r.dbClient.SaveEvent(ctx, record.Seq, &event)
	default:
		return fmt.Errorf("unknown outbox kind %q", record.Kind)
	}
}

func idempotencyKey(seq uint64) string {
	return fmt.Sprintf("outbox-%d", seq)
}
