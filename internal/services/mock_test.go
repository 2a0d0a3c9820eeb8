package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/okxbot/gookx/okx/types"
)

// mockExchange is a scriptable fake for ports.Exchange. Balance reads pop
// from a per-currency queue (the last value sticks), so tests can script
// the before/after snapshots the delta oracle sees. errOn injects an
// error for a named method.
type mockExchange struct {
	mu sync.Mutex

	balanceQueue map[string][]float64
	errOn        map[string]error

	ticker     *types.Ticker
	book       *types.OrderBook
	candles    []types.Candle
	openOrders []types.Order

	nextID       int
	marketOrders []marketCall
	limitOrders  []limitCall
	stopOrders   []stopCall
	cancels      []string
}

type marketCall struct {
	instID string
	side   types.Side
	size   decimal.Decimal
}

type limitCall struct {
	instID      string
	side        types.Side
	size, price decimal.Decimal
}

type stopCall struct {
	instID        string
	size, trigger decimal.Decimal
}

func newMockExchange() *mockExchange {
	return &mockExchange{
		balanceQueue: map[string][]float64{},
		errOn:        map[string]error{},
		ticker: &types.Ticker{
			InstID: "BTC-USDT", Last: "50000", Open24h: "48000",
			High24h: "51000", Low24h: "47500", Vol24h: "1234",
		},
		book: &types.OrderBook{
			Asks: []types.BookLevel{{Price: "50001", Size: "0.5"}},
			Bids: []types.BookLevel{{Price: "49999", Size: "0.8"}},
		},
		candles: []types.Candle{
			{Ts: "1700000000000", Open: "49900", High: "50100", Low: "49800", Close: "50000", Volume: "10"},
		},
	}
}

// setBalances scripts the sequence of available balances one currency
// will report across successive reads.
func (m *mockExchange) setBalances(ccy string, values ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceQueue[ccy] = values
}

func (m *mockExchange) failWith(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errOn[method] = err
}

func (m *mockExchange) injected(method string) error {
	return m.errOn[method]
}

func (m *mockExchange) GetBalance(_ context.Context, ccy string) (types.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("GetBalance"); err != nil {
		return types.Balance{}, err
	}
	queue := m.balanceQueue[ccy]
	if len(queue) == 0 {
		return types.Balance{Currency: ccy}, nil
	}
	value := queue[0]
	if len(queue) > 1 {
		m.balanceQueue[ccy] = queue[1:]
	}
	return types.Balance{Currency: ccy, Available: value, Total: value}, nil
}

func (m *mockExchange) PlaceMarketOrder(_ context.Context, instID string, side types.Side, size decimal.Decimal) (*types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("PlaceMarketOrder"); err != nil {
		return nil, err
	}
	m.marketOrders = append(m.marketOrders, marketCall{instID, side, size})
	m.nextID++
	return &types.Order{
		InstID: instID, OrderID: fmt.Sprintf("mkt-%d", m.nextID),
		Side: side, OrdType: types.OrderTypeMarket, Size: size.String(),
	}, nil
}

func (m *mockExchange) PlaceLimitOrder(_ context.Context, instID string, side types.Side, size, price decimal.Decimal) (*types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("PlaceLimitOrder"); err != nil {
		return nil, err
	}
	m.limitOrders = append(m.limitOrders, limitCall{instID, side, size, price})
	m.nextID++
	return &types.Order{
		InstID: instID, OrderID: fmt.Sprintf("lim-%d", m.nextID),
		Side: side, OrdType: types.OrderTypeLimit, Size: size.String(), Price: price.String(),
	}, nil
}

func (m *mockExchange) PlaceStopOrder(_ context.Context, instID string, size, trigger decimal.Decimal) (*types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("PlaceStopOrder"); err != nil {
		return nil, err
	}
	m.stopOrders = append(m.stopOrders, stopCall{instID, size, trigger})
	m.nextID++
	return &types.Order{
		InstID: instID, AlgoID: fmt.Sprintf("algo-%d", m.nextID),
		Side: types.SideSell, OrdType: types.OrderTypeConditional,
		Size: size.String(), TriggerPrice: trigger.String(),
	}, nil
}

func (m *mockExchange) CancelOrder(_ context.Context, instID, orderID string) (*types.CancelAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("CancelOrder"); err != nil {
		return nil, err
	}
	m.cancels = append(m.cancels, orderID)
	return &types.CancelAck{OrdID: orderID, ClOrdID: "cl-" + orderID, SCode: "0"}, nil
}

func (m *mockExchange) GetOpenOrders(_ context.Context, _ string) ([]types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("GetOpenOrders"); err != nil {
		return nil, err
	}
	return m.openOrders, nil
}

func (m *mockExchange) GetFills(_ context.Context, _ types.FillFilter) ([]types.Fill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("GetFills"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *mockExchange) GetTicker(_ context.Context, _ string) (*types.Ticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("GetTicker"); err != nil {
		return nil, err
	}
	return m.ticker, nil
}

func (m *mockExchange) GetOrderBook(_ context.Context, _ string, _ int) (*types.OrderBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("GetOrderBook"); err != nil {
		return nil, err
	}
	return m.book, nil
}

func (m *mockExchange) GetCandles(_ context.Context, _ string, _ string, _ int, _ bool) ([]types.Candle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("GetCandles"); err != nil {
		return nil, err
	}
	return m.candles, nil
}
