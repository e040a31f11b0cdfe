package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

type ServerConfig struct {
	Host                string        `mapstructure:"host"`
	Port                int           `mapstructure:"port"`
	WriteTimeout        time.Duration `mapstructure:"write-timeout"`
	ReadTimeout         time.Duration `mapstructure:"read-timeout"`
	IdleTimeout         time.Duration `mapstructure:"idle-timeout"`
	AllowedOrigins      []string      `mapstructure:"allowed-origins"`
	// Human readable part every home-chain address must carry.
	AddressPrefix       string        `mapstructure:"address-prefix"`
	LogLevel            string        `mapstructure:"log-level"`
	MaxContentLength    int64         `mapstructure:"max-content-length"`
	HealthCheckInterval time.Duration `mapstructure:"health-check-interval"`
}

func (cfg *ServerConfig) Validate() error {
	if net.ParseIP(cfg.Host) == nil {
		return fmt.Errorf("invalid host: %v", cfg.Host)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("invalid port")
	}

	for name, d := range map[string]time.Duration{
		"write-timeout": cfg.WriteTimeout,
		"read-timeout":  cfg.ReadTimeout,
		"idle-timeout":  cfg.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if cfg.MaxContentLength <= 0 {
		return errors.New("max-content-length must be positive")
	}
	if cfg.HealthCheckInterval < time.Second {
		return errors.New("health-check-interval must be at least one second")
	}
	if cfg.AddressPrefix == "" {
		return errors.New("missing address-prefix")
	}

	return cfg.ValidateServerLogLevel()
}

func (cfg *ServerConfig) ListenAddress() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// ValidateServerLogLevel accepts an empty level, which keeps the zerolog
// default.
func (cfg *ServerConfig) ValidateServerLogLevel() error {
	if cfg.LogLevel == "" {
		return nil
	}

	parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if parsedLevel < zerolog.DebugLevel || parsedLevel > zerolog.FatalLevel {
		return errors.New("only log levels from debug to fatal are supported")
	}
	return nil
}
