package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/db"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// Service layer contains the orchestration engine. Every state-changing
// operation runs in one store transaction and records its outbound effects
// in the outbox of that same transaction.
type Services struct {
	Store    state.Store
	DbClient db.DBClient
	cfg      *config.Config
}

func New(ctx context.Context, cfg *config.Config, store state.Store) (*Services, error) {
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("error while creating db client")
		return nil, err
	}
	return NewServices(cfg, store, dbClient), nil
}

// NewServices wires the engine to already constructed clients.
func NewServices(cfg *config.Config, store state.Store, dbClient db.DBClient) *Services {
	return &Services{
		Store:    store,
		DbClient: dbClient,
		cfg:      cfg,
	}
}

// DoHealthCheck checks the health of the services by pinging the database
// and the engine store.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	if err := s.Store.Ping(ctx); err != nil {
		return err
	}
	return s.DbClient.Ping(ctx)
}

func (s *Services) SaveUnprocessableMessages(ctx context.Context, messageBody, receipt string) *types.Error {
	err := s.DbClient.SaveUnprocessableMessage(ctx, messageBody, receipt)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while saving unprocessable message")
		return types.NewErrorWithMsg(http.StatusInternalServerError, types.InternalServiceError, "error while saving unprocessable message")
	}
	return nil
}

// Bootstrap seeds the trusted identities, the bridge settings and the
// configured tokens. Values already in the store are left untouched so the
// admin API stays authoritative after the first start.
func (s *Services) Bootstrap(ctx context.Context, tokens *config.TokenBootstrap) error {
	return s.Store.Update(ctx, func(tx *state.Tx) error {
		if _, err := tx.ContractConfig(); errors.Is(err, state.ErrNotFound) {
			if err := tx.SetContractConfig(s.cfg.Contract.ToContractConfig()); err != nil {
				return err
			}
			log.Ctx(ctx).Info().Str("owner", s.cfg.Contract.Owner).Msg("contract config initialized")
		} else if err != nil {
			return err
		}

		if _, err := tx.BridgeConfig(); errors.Is(err, state.ErrNotFound) {
			if err := tx.SetBridgeConfig(s.cfg.Bridge.ToBridgeConfig()); err != nil {
				return err
			}
			log.Ctx(ctx).Info().Str("channel", s.cfg.Bridge.ChannelID).Msg("bridge config initialized")
		} else if err != nil {
			return err
		}

		if tokens == nil {
			return nil
		}
		for _, t := range tokens.Tokens {
			if tx.HasToken(t.Denom) {
				continue
			}
			tokenConfig := t.TokenConfig
			if e := s.registerToken(tx, t.Denom, &tokenConfig); e != nil {
				return e
			}
			log.Ctx(ctx).Info().Str("denom", t.Denom).Msg("token registered from bootstrap file")
		}
		return nil
	})
}
