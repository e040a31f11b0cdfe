package clients

import (
	"github.com/yieldward/yield-ward-service/internal/clients/ledger"
	"github.com/yieldward/yield-ward-service/internal/config"
)

type Clients struct {
	Ledger *ledger.LedgerClient
}

func New(cfg *config.Config) *Clients {
	return &Clients{
		Ledger: ledger.NewLedgerClient(&cfg.Ledger),
	}
}
