package config

import (
	"errors"
	"time"
)

type RelayerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	BatchSize   int           `mapstructure:"batch-size"`
	MaxAttempts int           `mapstructure:"max-attempts"`
	Backoff     time.Duration `mapstructure:"backoff"`
}

func (cfg *RelayerConfig) Validate() error {
	if cfg.Interval <= 0 {
		return errors.New("relayer interval must be positive")
	}

	if cfg.BatchSize <= 0 {
		return errors.New("relayer batch-size must be positive")
	}

	if cfg.MaxAttempts <= 0 {
		return errors.New("relayer max-attempts must be positive")
	}

	if cfg.Backoff < 0 {
		return errors.New("relayer backoff cannot be negative")
	}

	return nil
}
