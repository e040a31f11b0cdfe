package config

import (
	"errors"
	"net/url"
)

// LedgerConfig points at the home ledger gateway that executes mint, burn
// and transfer instructions.
type LedgerConfig struct {
	Url     string `mapstructure:"url"`
	ApiKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("ledger url cannot be empty")
	}

	parsedURL, err := url.ParseRequestURI(cfg.Url)
	if err != nil {
		return errors.New("invalid ledger url")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("ledger url must start with http or https")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout cannot be smaller or equal to 0")
	}

	return nil
}
