package binance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/songzhibin97/futuresctl/internal/trading"
)

func TestWrapOrderError(t *testing.T) {
	g := &FuturesGateway{log: zap.NewNop()}

	t.Run("structured API rejection", func(t *testing.T) {
		apiErr := &common.APIError{Code: -2019, Message: "Margin is insufficient."}
		err := g.wrapOrderError("market", fmt.Errorf("order failed: %w", apiErr))

		var exchErr *trading.ExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Equal(t, int64(-2019), exchErr.Code)
		assert.Equal(t, "Margin is insufficient.", exchErr.Message)
	})

	t.Run("transport failure wrapped generically", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := g.wrapOrderError("limit", cause)

		var exchErr *trading.ExchangeError
		assert.False(t, errors.As(err, &exchErr))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "limit")
	})
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, parseDecimal("63500.5").Equal(decimal.RequireFromString("63500.5")))
	assert.True(t, parseDecimal("").IsZero())
	assert.True(t, parseDecimal("N/A").IsZero())
}

// Integration test against the futures testnet. Needs BINANCE_API_KEY
// and BINANCE_API_SECRET with testnet access.
func TestFuturesGateway_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	apiKey := os.Getenv("BINANCE_API_KEY")
	secretKey := os.Getenv("BINANCE_API_SECRET")
	if apiKey == "" || secretKey == "" {
		t.Skip("Skipping integration test: credentials not set")
	}

	const symbol = "BTCUSDT"

	g := NewFuturesGateway(apiKey, secretKey, true, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, g.Ping(ctx))

	t.Run("place market order", func(t *testing.T) {
		result, err := g.PlaceMarketOrder(ctx, symbol, trading.SideBuy, decimal.RequireFromString("0.001"))
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotZero(t, result.OrderID)
		assert.NotEmpty(t, result.Status)
		assert.Equal(t, trading.OrderTypeMarket, result.Type)
	})

	t.Run("place limit order and check status", func(t *testing.T) {
		// Rest far below market so the order stays NEW.
		result, err := g.PlaceLimitOrder(ctx, symbol, trading.SideBuy,
			decimal.RequireFromString("0.001"), decimal.RequireFromString("10000"))
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotZero(t, result.OrderID)

		time.Sleep(2 * time.Second)

		status, err := g.GetOrderStatus(ctx, symbol, result.OrderID)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, "NEW", status.Status)
		assert.Equal(t, trading.OrderTypeLimit, status.Type)
	})

	t.Run("status lookup for unknown order is absent", func(t *testing.T) {
		status, err := g.GetOrderStatus(ctx, symbol, 1)
		assert.NoError(t, err)
		assert.Nil(t, status)
	})
}
