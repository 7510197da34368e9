package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("BINANCE_API_KEY", "")
		t.Setenv("BINANCE_API_SECRET", "")

		cfg := Load()
		require.NotNil(t, cfg)
		assert.ErrorIs(t, cfg.CheckCredentials(), ErrMissingCredentials)
		assert.True(t, cfg.Testnet, "missing credentials still yield a usable config")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BINANCE_API_KEY", "key")
		t.Setenv("BINANCE_API_SECRET", "secret")
		t.Setenv("BINANCE_TESTNET", "")
		t.Setenv("FUTURESCTL_LOG_DIR", "")

		cfg := Load()
		require.NoError(t, cfg.CheckCredentials())
		assert.Equal(t, "key", cfg.APIKey)
		assert.Equal(t, "secret", cfg.SecretKey)
		assert.True(t, cfg.Testnet, "testnet must be the default")
		assert.Equal(t, ".", cfg.LogDir)
	})

	t.Run("explicit mainnet opt-out", func(t *testing.T) {
		t.Setenv("BINANCE_API_KEY", "key")
		t.Setenv("BINANCE_API_SECRET", "secret")
		t.Setenv("BINANCE_TESTNET", "false")

		assert.False(t, Load().Testnet)
	})

	t.Run("log dir override", func(t *testing.T) {
		t.Setenv("BINANCE_API_KEY", "key")
		t.Setenv("BINANCE_API_SECRET", "secret")
		t.Setenv("FUTURESCTL_LOG_DIR", "/var/log/futuresctl")

		assert.Equal(t, "/var/log/futuresctl", Load().LogDir)
	})
}
