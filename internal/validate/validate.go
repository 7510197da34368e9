// Package validate normalizes and checks user-supplied order fields.
// All functions are pure: no I/O, no state, idempotent on input that
// is already in canonical form.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/songzhibin97/futuresctl/internal/trading"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{5,12}$`)

// advisoryMinQuantity is the floor below which a quantity is likely
// under the exchange minimum for major symbols. Exchange minimums vary
// per symbol and are not enforced here, so crossing it is a warning,
// never an error.
var advisoryMinQuantity = decimal.RequireFromString("0.001")

// FieldError describes a single rejected input field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %q. %s", e.Field, e.Value, e.Reason)
}

// Symbol uppercases and trims raw and checks it is a plausible trading
// pair: 5-12 characters, letters and digits only.
func Symbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))

	if !symbolPattern.MatchString(symbol) {
		return "", &FieldError{
			Field:  "symbol",
			Value:  raw,
			Reason: "Must be 5-12 uppercase letters/digits, like 'BTCUSDT', 'ETHUSDT'",
		}
	}

	return symbol, nil
}

// Side accepts exactly BUY or SELL after normalization.
func Side(raw string) (trading.Side, error) {
	side := strings.ToUpper(strings.TrimSpace(raw))

	switch trading.Side(side) {
	case trading.SideBuy, trading.SideSell:
		return trading.Side(side), nil
	default:
		return "", &FieldError{
			Field:  "side",
			Value:  raw,
			Reason: "Must be 'BUY' or 'SELL'",
		}
	}
}

// OrderType accepts exactly MARKET or LIMIT after normalization.
func OrderType(raw string) (trading.OrderType, error) {
	orderType := strings.ToUpper(strings.TrimSpace(raw))

	switch trading.OrderType(orderType) {
	case trading.OrderTypeMarket, trading.OrderTypeLimit:
		return trading.OrderType(orderType), nil
	default:
		return "", &FieldError{
			Field:  "order type",
			Value:  raw,
			Reason: "Must be 'MARKET' or 'LIMIT'",
		}
	}
}

// Quantity parses raw as a positive decimal.
func Quantity(raw string) (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || qty.Sign() <= 0 {
		return decimal.Zero, &FieldError{
			Field:  "quantity",
			Value:  raw,
			Reason: "Must be a positive number, like '0.001'",
		}
	}

	return qty, nil
}

// BelowAdvisoryMinimum reports whether qty is under the advisory floor.
// Callers surface this as a warning; it never blocks an order.
func BelowAdvisoryMinimum(qty decimal.Decimal) bool {
	return qty.LessThan(advisoryMinQuantity)
}

// Price parses raw as a positive decimal.
func Price(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.Sign() <= 0 {
		return decimal.Zero, &FieldError{
			Field:  "price",
			Value:  raw,
			Reason: "Must be a positive number, like '50000'",
		}
	}

	return price, nil
}
