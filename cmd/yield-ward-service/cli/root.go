package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName = "config.yml"
	defaultTokensFileName = "tokens.yml"
)

var (
	cfgPath    string
	tokensPath string
	replayFlag bool
	rootCmd    = &cobra.Command{
		Use:   "yield-ward-service",
		Short: "Cross-chain stake and unstake orchestration service",
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := filepath.Join(homePath, defaultConfigFileName)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	rootCmd.PersistentFlags().StringVar(&tokensPath, "tokens", "", "yaml file of tokens registered at start when absent")
	rootCmd.PersistentFlags().BoolVar(&replayFlag, "replay", false, "resend the archived unprocessable messages and exit")
	return rootCmd.Execute()
}

func GetConfigPath() string {
	return cfgPath
}

// GetTokensPath returns the token bootstrap file, or "" when none was given.
func GetTokensPath() string {
	return tokensPath
}

func GetReplayFlag() bool {
	return replayFlag
}
