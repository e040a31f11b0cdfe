package config

import (
	"errors"
	"time"
)

// StateConfig locates the embedded engine store.
type StateConfig struct {
	Path        string        `mapstructure:"path"`
	OpenTimeout time.Duration `mapstructure:"open-timeout"`
}

func (cfg *StateConfig) Validate() error {
	if cfg.Path == "" {
		return errors.New("missing state path")
	}

	if cfg.OpenTimeout <= 0 {
		return errors.New("state open-timeout must be positive")
	}

	return nil
}
