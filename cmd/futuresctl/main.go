package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/songzhibin97/futuresctl/internal/app"
	"github.com/songzhibin97/futuresctl/internal/configs"
	"github.com/songzhibin97/futuresctl/internal/logging"
	"github.com/songzhibin97/futuresctl/internal/market"
	binanceTrading "github.com/songzhibin97/futuresctl/internal/trading/binance"
)

var flagPrice string

func init() {
	flag.StringVar(&flagPrice, "price", "", "price for LIMIT orders (required for LIMIT)")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: futuresctl [flags] symbol side orderType quantity

Place an order on Binance USD-M futures (testnet by default).

Arguments:
  symbol      trading pair, e.g. BTCUSDT, ETHUSDT
  side        BUY or SELL
  orderType   MARKET or LIMIT
  quantity    amount to trade, e.g. 0.001

Flags:
  -price      price for LIMIT orders (required for LIMIT)

Examples:
  # Market order (buy immediately)
  futuresctl BTCUSDT BUY MARKET 0.001

  # Limit order (sell at a specific price)
  futuresctl -price 2500 ETHUSDT SELL LIMIT 0.1

Credentials are read from BINANCE_API_KEY and BINANCE_API_SECRET
(a .env file in the working directory is honored).
`)
}

func printBanner(testnet bool) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("              BINANCE FUTURES ORDER TOOL")
	if testnet {
		fmt.Println("                  (TESTNET MODE)")
	}
	fmt.Println(strings.Repeat("=", 60))
}

func main() {
	flag.Parse()

	if flag.NArg() != 4 {
		usage()
		os.Exit(1)
	}

	cfg := configs.Load()

	logger, flush, err := logging.New(cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	printBanner(cfg.Testnet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gateway := binanceTrading.NewFuturesGateway(cfg.APIKey, cfg.SecretKey, cfg.Testnet, logger)

	a := &app.App{
		Gateway:     gateway,
		Ticker:      market.NewBinanceTicker(cfg.Testnet),
		Ping:        gateway.Ping,
		Credentials: cfg.CheckCredentials,
		Confirm:     app.StdinConfirm(os.Stdin, os.Stdout),
		Out:         os.Stdout,
		Log:         logger,
	}

	code := a.Run(ctx, app.Args{
		Symbol:    flag.Arg(0),
		Side:      flag.Arg(1),
		OrderType: flag.Arg(2),
		Quantity:  flag.Arg(3),
		Price:     flagPrice,
		PriceSet:  flagPrice != "",
	})

	flush()
	os.Exit(code)
}
