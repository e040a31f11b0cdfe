package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	State    StateConfig    `mapstructure:"state"`
	Db       DbConfig       `mapstructure:"db"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	Relayer  RelayerConfig  `mapstructure:"relayer"`
	Contract ContractConfig `mapstructure:"contract"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return err
	}

	if err := cfg.State.Validate(); err != nil {
		return err
	}

	if err := cfg.Db.Validate(); err != nil {
		return err
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}

	if err := cfg.Queue.Validate(); err != nil {
		return err
	}

	if err := cfg.Ledger.Validate(); err != nil {
		return err
	}

	if err := cfg.Bridge.Validate(); err != nil {
		return err
	}

	if err := cfg.Relayer.Validate(); err != nil {
		return err
	}

	if err := cfg.Contract.Validate(cfg.Server.AddressPrefix); err != nil {
		return err
	}

	return nil
}

// New returns a fully parsed Config object from a given file directory
func New(cfgFile string) (*Config, error) {
	_, err := os.Stat(cfgFile)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.AutomaticEnv()
	/*
		Nested keys are overridden with `_` and any `-` with `__`, e.g.
		1. `relayer.interval` can be overridden by `RELAYER_INTERVAL`
		2. `server.log-level` can be overridden by `SERVER_LOG__LEVEL`
	*/
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))

	err = v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
