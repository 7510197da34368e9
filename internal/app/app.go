// Package app drives the linear order flow: validate the raw arguments,
// show a summary and ask for confirmation, submit through the exchange
// gateway, and report the result. It owns the process exit code.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/songzhibin97/futuresctl/internal/market"
	"github.com/songzhibin97/futuresctl/internal/trading"
	"github.com/songzhibin97/futuresctl/internal/validate"
)

// Args are the raw command-line tokens, untouched by validation.
type Args struct {
	Symbol    string
	Side      string
	OrderType string
	Quantity  string
	Price     string
	PriceSet  bool
}

// ConfirmFunc asks the user to approve the rendered order summary.
// Anything but an explicit affirmative answer is a decline.
type ConfirmFunc func(prompt string) (bool, error)

// StdinConfirm reads one line from in and accepts exactly "yes"
// (case-insensitive, trimmed) as affirmative.
func StdinConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		return strings.ToLower(strings.TrimSpace(line)) == "yes", nil
	}
}

// App wires the collaborators of one CLI invocation. Gateway, Confirm,
// Out and Log are required; the rest are optional.
type App struct {
	Gateway     trading.Gateway
	Ticker      market.Source                   // optional last-price lookup for the summary
	Ping        func(ctx context.Context) error // optional connectivity probe before submission
	Credentials func() error                    // optional credential presence check, run after validation
	Confirm     ConfirmFunc
	Out         io.Writer
	Log         *zap.Logger
}

// Run executes the full flow and returns the process exit code:
// 0 on success, decline or interrupt; 1 on any failure.
func (a *App) Run(ctx context.Context, args Args) int {
	a.Log.Info("starting order placement")

	req, err := a.buildRequest(args)
	if err != nil {
		a.Log.Error("input validation failed", zap.Error(err))
		fmt.Fprintf(a.Out, "\nError: %v\n", err)
		fmt.Fprintln(a.Out, "\nTip: run with --help to see examples")
		return 1
	}

	if validate.BelowAdvisoryMinimum(req.Quantity) {
		fmt.Fprintf(a.Out, "\nWarning: quantity %s might be too small for some symbols\n", req.Quantity)
	}

	// Credentials are checked only after the input passed validation, so
	// a user with both problems hears about the malformed order first.
	if a.Credentials != nil {
		if err := a.Credentials(); err != nil {
			a.Log.Error("missing credentials", zap.Error(err))
			fmt.Fprintln(a.Out, "\nAPI credentials not found!")
			fmt.Fprintln(a.Out, "Please create a '.env' file with:")
			fmt.Fprintln(a.Out, "  BINANCE_API_KEY=your_key_here")
			fmt.Fprintln(a.Out, "  BINANCE_API_SECRET=your_secret_here")
			return 1
		}
	}

	ok, err := a.confirm(ctx, req)
	if ctx.Err() != nil {
		// Ctrl+C at the prompt: the signal context is cancelled whatever
		// the confirmation read returned.
		return a.cancelled()
	}
	if err != nil {
		a.Log.Warn("failed to read confirmation", zap.Error(err))
		fmt.Fprintf(a.Out, "\nFailed to read confirmation: %v\n", err)
		return 1
	}
	if !ok {
		a.Log.Info("order cancelled by user")
		fmt.Fprintln(a.Out, "\nOrder cancelled.")
		return 0
	}

	if a.Ping != nil {
		fmt.Fprintln(a.Out, "\nConnecting to exchange...")
		if err := a.Ping(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return a.cancelled()
			}
			a.Log.Error("connection failed", zap.Error(err))
			fmt.Fprintf(a.Out, "\nFailed to connect: %v\n", err)
			fmt.Fprintln(a.Out, "Check your API credentials and internet connection.")
			return 1
		}
	}

	fmt.Fprintf(a.Out, "\nPlacing %s order...\n", req.Type)

	result, err := a.submit(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return a.cancelled()
		}

		a.Log.Error("order placement failed", zap.Error(err))

		var exchErr *trading.ExchangeError
		if errors.As(err, &exchErr) {
			fmt.Fprintf(a.Out, "\nOrder rejected by exchange: %s (code %d)\n", exchErr.Message, exchErr.Code)
		} else {
			fmt.Fprintf(a.Out, "\nFailed to place order: %v\n", err)
		}
		return 1
	}

	a.report(ctx, req, result)
	a.Log.Info("order placed", zap.Int64("order_id", result.OrderID))
	return 0
}

// cancelled is the exit path for a user interrupt: not an error.
func (a *App) cancelled() int {
	a.Log.Info("operation cancelled by user")
	fmt.Fprintln(a.Out, "\nOperation cancelled by user.")
	return 0
}

// buildRequest runs every validator and enforces the price/type
// invariant: a LIMIT order must carry a price, a MARKET order must not.
func (a *App) buildRequest(args Args) (*trading.OrderRequest, error) {
	symbol, err := validate.Symbol(args.Symbol)
	if err != nil {
		return nil, err
	}

	side, err := validate.Side(args.Side)
	if err != nil {
		return nil, err
	}

	orderType, err := validate.OrderType(args.OrderType)
	if err != nil {
		return nil, err
	}

	quantity, err := validate.Quantity(args.Quantity)
	if err != nil {
		return nil, err
	}

	req := &trading.OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Type:     orderType,
		Quantity: quantity,
	}

	if orderType == trading.OrderTypeLimit {
		if !args.PriceSet {
			return nil, errors.New("price is required for LIMIT orders (use --price)")
		}
		price, err := validate.Price(args.Price)
		if err != nil {
			return nil, err
		}
		req.Price = price
	}

	return req, nil
}

func (a *App) confirm(ctx context.Context, req *trading.OrderRequest) (bool, error) {
	fmt.Fprintln(a.Out, "\nORDER SUMMARY:")
	fmt.Fprintln(a.Out, strings.Repeat("-", 40))
	fmt.Fprintf(a.Out, "   Symbol:       %s\n", req.Symbol)
	fmt.Fprintf(a.Out, "   Side:         %s\n", req.Side)
	fmt.Fprintf(a.Out, "   Order Type:   %s\n", req.Type)
	fmt.Fprintf(a.Out, "   Quantity:     %s\n", req.Quantity)
	if req.Type == trading.OrderTypeLimit {
		fmt.Fprintf(a.Out, "   Price:        $%s\n", req.Price)
	}
	if last, ok := a.lastPrice(ctx, req.Symbol); ok {
		fmt.Fprintf(a.Out, "   Last Price:   $%s\n", last)
	}
	fmt.Fprintln(a.Out, strings.Repeat("-", 40))

	return a.Confirm("\nConfirm this order? (yes/no): ")
}

// lastPrice is advisory only; on failure the summary simply omits it.
func (a *App) lastPrice(ctx context.Context, symbol string) (string, bool) {
	if a.Ticker == nil {
		return "", false
	}

	price, err := a.Ticker.LastPrice(ctx, symbol)
	if err != nil {
		a.Log.Debug("last price lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return "", false
	}

	return price.String(), true
}

func (a *App) submit(ctx context.Context, req *trading.OrderRequest) (*trading.OrderResult, error) {
	if req.Type == trading.OrderTypeMarket {
		return a.Gateway.PlaceMarketOrder(ctx, req.Symbol, req.Side, req.Quantity)
	}
	return a.Gateway.PlaceLimitOrder(ctx, req.Symbol, req.Side, req.Quantity, req.Price)
}

func (a *App) report(ctx context.Context, req *trading.OrderRequest, result *trading.OrderResult) {
	// A resting limit order may have moved between the create response
	// and now; refresh once, best effort.
	if req.Type == trading.OrderTypeLimit {
		if fresh, _ := a.Gateway.GetOrderStatus(ctx, req.Symbol, result.OrderID); fresh != nil {
			result = fresh
		}
	}

	fmt.Fprintln(a.Out, "\nORDER PLACED SUCCESSFULLY!")
	fmt.Fprintln(a.Out, strings.Repeat("=", 50))
	fmt.Fprintf(a.Out, "   Order ID:     %d\n", result.OrderID)
	fmt.Fprintf(a.Out, "   Status:       %s\n", result.Status)
	fmt.Fprintf(a.Out, "   Executed Qty: %s\n", result.ExecutedQty)
	if result.AvgPrice.Sign() > 0 {
		fmt.Fprintf(a.Out, "   Avg Price:    $%s\n", result.AvgPrice)
	} else {
		fmt.Fprintln(a.Out, "   Avg Price:    N/A")
	}
	fmt.Fprintln(a.Out, strings.Repeat("=", 50))

	if result.Type == trading.OrderTypeLimit {
		fmt.Fprintln(a.Out, "\nYour limit order is now resting on the book.")
		fmt.Fprintln(a.Out, "It will execute when the market reaches your price.")
	} else {
		fmt.Fprintln(a.Out, "\nMarket order executed immediately!")
	}
}
