package configs

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials indicates the exchange API key pair was not
// found in the environment. No network call is attempted in that case.
var ErrMissingCredentials = errors.New("missing BINANCE_API_KEY / BINANCE_API_SECRET")

type Config struct {
	// 交易所配置
	APIKey    string // 交易所API密钥
	SecretKey string // 交易所密钥
	Testnet   bool   // 使用测试网

	LogDir string // 日志目录
}

// Load reads configuration from a .env file (if present) and the
// environment. Priority: ENV > .env file > defaults. Missing
// credentials are not an error here; CheckCredentials reports them at
// the point in the flow where they are first needed.
func Load() *Config {
	_ = godotenv.Load() // optional, ignore a missing .env

	cfg := &Config{
		APIKey:    os.Getenv("BINANCE_API_KEY"),
		SecretKey: os.Getenv("BINANCE_API_SECRET"),
		Testnet:   true,
		LogDir:    ".",
	}

	// Only an explicit opt-out leaves the testnet.
	if v := os.Getenv("BINANCE_TESTNET"); v != "" {
		cfg.Testnet = v != "false"
	}

	if dir := os.Getenv("FUTURESCTL_LOG_DIR"); dir != "" {
		cfg.LogDir = dir
	}

	return cfg
}

// CheckCredentials reports whether the exchange API key pair is set.
func (c *Config) CheckCredentials() error {
	if c.APIKey == "" || c.SecretKey == "" {
		return ErrMissingCredentials
	}
	return nil
}
