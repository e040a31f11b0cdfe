package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	localConfigPath = "../../config/config-local.yml"
	localTokensPath = "../../config/tokens-local.yml"
)

func TestNew_LocalConfig(t *testing.T) {
	cfg, err := New(localConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "ward", cfg.Server.AddressPrefix)
	assert.Equal(t, 5*time.Second, cfg.State.OpenTimeout)
	assert.Equal(t, 50, cfg.Relayer.BatchSize)
	assert.Equal(t, int32(10), cfg.Queue.MsgMaxRetryAttempts)
	assert.True(t, cfg.Contract.IsMintAllowed)
	assert.Equal(t, uint64(600), cfg.Bridge.ToBridgeConfig().TimeoutSeconds)
}

func TestNew_EnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("RELAYER_BATCH__SIZE", "7")
	t.Setenv("SERVER_LOG__LEVEL", "error")

	cfg, err := New(localConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Relayer.BatchSize)
	assert.Equal(t, "error", cfg.Server.LogLevel)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("owner with the wrong prefix", func(t *testing.T) {
		t.Setenv("CONTRACT_OWNER", "cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgpjnp7du")
		_, err := New(localConfigPath)
		assert.ErrorContains(t, err, "owner")
	})

	t.Run("zero relayer batch", func(t *testing.T) {
		t.Setenv("RELAYER_BATCH__SIZE", "0")
		_, err := New(localConfigPath)
		assert.ErrorContains(t, err, "batch-size")
	})
}

func TestLoadTokenBootstrap(t *testing.T) {
	boot, err := LoadTokenBootstrap(localTokensPath)
	require.NoError(t, err)
	require.Len(t, boot.Tokens, 1)
	token := boot.Tokens[0]
	assert.Equal(t, "uusdc", token.Denom)
	assert.Equal(t, "ethereum", token.Chain)
	assert.Equal(t, uint8(6), token.DepositTokenDecimals)
	assert.True(t, token.IsStakeEnabled)

	path := filepath.Join(t.TempDir(), "tokens.yml")
	require.NoError(t, os.WriteFile(path, []byte("tokens:\n  - denom: a\n  - denom: a\n"), 0o600))
	_, err = LoadTokenBootstrap(path)
	assert.ErrorContains(t, err, "duplicate")
}
