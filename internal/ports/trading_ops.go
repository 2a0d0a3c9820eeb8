package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/okxbot/gookx/okx/types"
)

// Small capability interfaces shared across layers (services/gateway).
// *client.Client satisfies all of them; tests substitute fakes.

type BalanceReader interface {
	// GetBalance returns a point-in-time snapshot for one currency.
	// Zero balance with nil error means "nothing there or unparseable".
	GetBalance(ctx context.Context, ccy string) (types.Balance, error)
}

type OrderPlacer interface {
	// PlaceMarketOrder sizes buys in quote notional and sells in base
	// quantity.
	PlaceMarketOrder(ctx context.Context, instID string, side types.Side, size decimal.Decimal) (*types.Order, error)
	PlaceLimitOrder(ctx context.Context, instID string, side types.Side, size, price decimal.Decimal) (*types.Order, error)
	PlaceStopOrder(ctx context.Context, instID string, size, triggerPrice decimal.Decimal) (*types.Order, error)
}

type OrderCanceler interface {
	CancelOrder(ctx context.Context, instID, orderID string) (*types.CancelAck, error)
}

type OpenOrdersReader interface {
	GetOpenOrders(ctx context.Context, instID string) ([]types.Order, error)
}

type FillsReader interface {
	GetFills(ctx context.Context, filter types.FillFilter) ([]types.Fill, error)
}

type MarketDataReader interface {
	GetTicker(ctx context.Context, instID string) (*types.Ticker, error)
	GetOrderBook(ctx context.Context, instID string, depth int) (*types.OrderBook, error)
	GetCandles(ctx context.Context, instID, bar string, limit int, historical bool) ([]types.Candle, error)
}

// Exchange is the full surface the services need.
type Exchange interface {
	BalanceReader
	OrderPlacer
	OrderCanceler
	OpenOrdersReader
	FillsReader
	MarketDataReader
}
