package binance

import (
	"context"
	"errors"
	"fmt"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/songzhibin97/futuresctl/internal/trading"
)

// FuturesGateway implements trading.Gateway against the Binance USDⓈ-M
// futures API.
type FuturesGateway struct {
	client *futures.Client
	log    *zap.Logger
}

// NewFuturesGateway creates a gateway for the given credentials.
// With testnet set, all requests go to the futures testnet.
func NewFuturesGateway(apiKey, secretKey string, testnet bool, log *zap.Logger) *FuturesGateway {
	if testnet {
		futures.UseTestnet = true
	}

	client := futures.NewClient(apiKey, secretKey)

	return &FuturesGateway{
		client: client,
		log:    log,
	}
}

// Ping verifies connectivity to the exchange before any order is sent.
func (g *FuturesGateway) Ping(ctx context.Context) error {
	if err := g.client.NewPingService().Do(ctx); err != nil {
		return fmt.Errorf("failed to reach exchange: %w", err)
	}
	return nil
}

// PlaceMarketOrder submits an immediate-execution order.
func (g *FuturesGateway) PlaceMarketOrder(ctx context.Context, symbol string, side trading.Side, quantity decimal.Decimal) (*trading.OrderResult, error) {
	g.log.Info("placing MARKET order",
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.String("quantity", quantity.String()))

	res, err := g.client.NewCreateOrderService().
		Symbol(symbol).
		Side(futures.SideType(side)).
		Type(futures.OrderTypeMarket).
		Quantity(quantity.String()).
		Do(ctx)
	if err != nil {
		return nil, g.wrapOrderError("market", err)
	}

	g.log.Info("market order placed", zap.Int64("order_id", res.OrderID))
	return fromCreateResponse(res), nil
}

// PlaceLimitOrder submits a resting order that stays on the book until
// filled or cancelled.
func (g *FuturesGateway) PlaceLimitOrder(ctx context.Context, symbol string, side trading.Side, quantity, price decimal.Decimal) (*trading.OrderResult, error) {
	g.log.Info("placing LIMIT order",
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.String("quantity", quantity.String()),
		zap.String("price", price.String()))

	res, err := g.client.NewCreateOrderService().
		Symbol(symbol).
		Side(futures.SideType(side)).
		Type(futures.OrderTypeLimit).
		TimeInForce(futures.TimeInForceTypeGTC).
		Quantity(quantity.String()).
		Price(price.String()).
		Do(ctx)
	if err != nil {
		return nil, g.wrapOrderError("limit", err)
	}

	g.log.Info("limit order placed", zap.Int64("order_id", res.OrderID))
	return fromCreateResponse(res), nil
}

// GetOrderStatus retrieves the current state of an order. It is the one
// best-effort read in the system: any failure is logged and reported as
// an absent result, never propagated.
func (g *FuturesGateway) GetOrderStatus(ctx context.Context, symbol string, orderID int64) (*trading.OrderResult, error) {
	res, err := g.client.NewGetOrderService().
		Symbol(symbol).
		OrderID(orderID).
		Do(ctx)
	if err != nil {
		g.log.Warn("failed to check order status",
			zap.String("symbol", symbol),
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return nil, nil
	}

	return &trading.OrderResult{
		OrderID:     res.OrderID,
		Symbol:      res.Symbol,
		Status:      string(res.Status),
		ExecutedQty: parseDecimal(res.ExecutedQuantity),
		AvgPrice:    parseDecimal(res.AvgPrice),
		Type:        trading.OrderType(res.Type),
	}, nil
}

// wrapOrderError converts a structured exchange rejection into a
// trading.ExchangeError and everything else into a generic failure.
func (g *FuturesGateway) wrapOrderError(kind string, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		g.log.Error("exchange rejected order",
			zap.Int64("code", apiErr.Code),
			zap.String("message", apiErr.Message))
		return &trading.ExchangeError{Code: apiErr.Code, Message: apiErr.Message}
	}

	g.log.Error("order placement failed", zap.Error(err))
	return fmt.Errorf("unexpected error placing %s order: %w", kind, err)
}

func fromCreateResponse(res *futures.CreateOrderResponse) *trading.OrderResult {
	return &trading.OrderResult{
		OrderID:     res.OrderID,
		Symbol:      res.Symbol,
		Status:      string(res.Status),
		ExecutedQty: parseDecimal(res.ExecutedQuantity),
		AvgPrice:    parseDecimal(res.AvgPrice),
		Type:        trading.OrderType(res.Type),
	}
}

// parseDecimal tolerates the empty or absent numeric strings the
// exchange returns on unfilled orders.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
