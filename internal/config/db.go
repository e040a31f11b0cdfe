package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// DbConfig points at the mongo archive. Both plain and SRV connection
// strings are accepted; SRV records carry no port.
type DbConfig struct {
	DbName             string `mapstructure:"db-name"`
	Address            string `mapstructure:"address"`
	MaxPaginationLimit int64  `mapstructure:"max-pagination-limit"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.DbName == "" {
		return errors.New("missing db name")
	}
	if cfg.Address == "" {
		return errors.New("missing db address")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}
	if u.Hostname() == "" {
		return errors.New("missing host in db address")
	}

	switch u.Scheme {
	case "mongodb+srv":
		if u.Port() != "" {
			return errors.New("srv db address cannot carry a port")
		}
	case "mongodb":
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return fmt.Errorf("invalid or missing port in db address: %q", u.Port())
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("db port out of range: %d", port)
		}
	default:
		return fmt.Errorf("unsupported db scheme: %s", u.Scheme)
	}

	if cfg.MaxPaginationLimit < 2 {
		return errors.New("max pagination limit must be greater than 1")
	}

	return nil
}
