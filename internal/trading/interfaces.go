package trading

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType selects immediate or resting execution.
type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

// Gateway defines the exchange operations this tool consumes
type Gateway interface {
	// PlaceMarketOrder submits an immediate-execution order
	PlaceMarketOrder(ctx context.Context, symbol string, side Side, quantity decimal.Decimal) (*OrderResult, error)

	// PlaceLimitOrder submits a resting order with a Good-Till-Cancelled duration
	PlaceLimitOrder(ctx context.Context, symbol string, side Side, quantity, price decimal.Decimal) (*OrderResult, error)

	// GetOrderStatus retrieves the current state of an order.
	// Best effort: implementations return (nil, nil) when the lookup fails.
	GetOrderStatus(ctx context.Context, symbol string, orderID int64) (*OrderResult, error)
}

// OrderRequest is a fully validated order intent.
// Invariant: Price is positive if and only if Type is OrderTypeLimit.
type OrderRequest struct {
	Symbol   string
	Side     Side
	Type     OrderType
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// OrderResult is the order state reported back by the exchange.
type OrderResult struct {
	OrderID     int64
	Symbol      string
	Status      string
	ExecutedQty decimal.Decimal
	AvgPrice    decimal.Decimal
	Type        OrderType
}

// ExchangeError is a structured rejection reported by the exchange,
// carrying the numeric code and message from the API response.
type ExchangeError struct {
	Code    int64
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange rejected request: %s (code %d)", e.Message, e.Code)
}
