package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// TokenBootstrap lists tokens registered at start when they are absent.
type TokenBootstrap struct {
	Tokens []TokenBootstrapEntry `yaml:"tokens"`
}

type TokenBootstrapEntry struct {
	Denom             string `yaml:"denom"`
	types.TokenConfig `yaml:",inline"`
}

func LoadTokenBootstrap(path string) (*TokenBootstrap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bootstrap TokenBootstrap
	if err := yaml.Unmarshal(data, &bootstrap); err != nil {
		return nil, fmt.Errorf("failed to parse token bootstrap file: %w", err)
	}

	seen := make(map[string]struct{}, len(bootstrap.Tokens))
	for _, t := range bootstrap.Tokens {
		if t.Denom == "" {
			return nil, fmt.Errorf("token bootstrap entry without denom")
		}
		if _, ok := seen[t.Denom]; ok {
			return nil, fmt.Errorf("duplicate token %s in bootstrap file", t.Denom)
		}
		seen[t.Denom] = struct{}{}
	}

	return &bootstrap, nil
}
