// Package market provides a best-effort last-price lookup used to
// enrich the order confirmation summary.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/songzhibin97/futuresctl/internal/utils/request"
)

const (
	mainnetBaseURL = "https://fapi.binance.com"
	testnetBaseURL = "https://testnet.binancefuture.com"
)

// Source yields the most recent traded price for a symbol.
type Source interface {
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// BinanceTicker reads the public futures ticker endpoint. It needs no
// credentials.
type BinanceTicker struct {
	baseURL    string
	httpClient *resty.Client
}

func NewBinanceTicker(testnet bool) *BinanceTicker {
	baseURL := mainnetBaseURL
	if testnet {
		baseURL = testnetBaseURL
	}

	return &BinanceTicker{
		baseURL:    baseURL,
		httpClient: request.Request,
	}
}

func (b *BinanceTicker) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/fapi/v1/ticker/price?symbol=%s", b.baseURL, symbol)

	resp, err := b.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}

	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse price: %w", err)
	}

	return price, nil
}
