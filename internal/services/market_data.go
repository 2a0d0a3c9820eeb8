package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okxbot/gookx/internal/ports"
	"github.com/okxbot/gookx/okx/types"
)

// Candle windows used for the snapshot: the recent bars cover the current
// session, the historical set covers 24h of 5m bars.
const (
	snapshotBar            = "5m"
	snapshotRecentCandles  = 10
	snapshotHistoryCandles = 288
	snapshotOrderBookDepth = 5
)

// AnalyticsSnapshot an aggregate read-only view assembled fresh per call,
// never cached. Every field is independently best-effort: a failed
// sub-read leaves its field empty rather than aborting the snapshot.
type AnalyticsSnapshot struct {
	Success           bool                     `json:"success"`
	InstID            string                   `json:"inst_id"`
	Timestamp         string                   `json:"timestamp"`
	Ticker            *types.Ticker            `json:"ticker,omitempty"`
	OrderBook         *types.OrderBook         `json:"order_book,omitempty"`
	Candles           []types.Candle           `json:"candles"`
	HistoricalCandles []types.Candle           `json:"historical_candles"`
	OpenOrders        []types.Order            `json:"open_orders"`
	Balances          map[string]types.Balance `json:"balances"`
	Indicators        map[string]string        `json:"indicators"`
	Degraded          []string                 `json:"degraded,omitempty"`
}

// AnalyticsService assembles market + account data into one snapshot.
type AnalyticsService struct {
	exchange ports.Exchange
}

func NewAnalyticsService(exchange ports.Exchange) *AnalyticsService {
	return &AnalyticsService{exchange: exchange}
}

// Snapshot issues six independent reads concurrently (order book, recent
// candles, historical candles, open orders, balances, ticker) and merges
// them under a single capture timestamp. Partial analytics beat no
// analytics: each failed sub-read degrades its field and is listed in
// Degraded, but the aggregation itself still reports success.
func (s *AnalyticsService) Snapshot(ctx context.Context, instID string) *AnalyticsSnapshot {
	snap := &AnalyticsSnapshot{
		InstID:            instID,
		Timestamp:         time.Now().UTC().Format(time.RFC3339Nano),
		Candles:           []types.Candle{},
		HistoricalCandles: []types.Candle{},
		OpenOrders:        []types.Order{},
		Balances:          map[string]types.Balance{},
		Indicators:        zeroIndicators(),
	}

	baseCcy, quoteCcy := splitInstrument(instID)

	var (
		wg sync.WaitGroup

		book     *types.OrderBook
		recent   []types.Candle
		history  []types.Candle
		open     []types.Order
		baseBal  types.Balance
		quoteBal types.Balance
		ticker   *types.Ticker

		errBook, errRecent, errHistory, errOpen, errBal, errTicker error
	)

	wg.Add(6)
	go func() {
		defer wg.Done()
		book, errBook = s.exchange.GetOrderBook(ctx, instID, snapshotOrderBookDepth)
	}()
	go func() {
		defer wg.Done()
		recent, errRecent = s.exchange.GetCandles(ctx, instID, snapshotBar, snapshotRecentCandles, false)
	}()
	go func() {
		defer wg.Done()
		history, errHistory = s.exchange.GetCandles(ctx, instID, snapshotBar, snapshotHistoryCandles, true)
	}()
	go func() {
		defer wg.Done()
		open, errOpen = s.exchange.GetOpenOrders(ctx, instID)
	}()
	go func() {
		defer wg.Done()
		baseBal, errBal = s.exchange.GetBalance(ctx, baseCcy)
		if errBal == nil {
			quoteBal, errBal = s.exchange.GetBalance(ctx, quoteCcy)
		}
	}()
	go func() {
		defer wg.Done()
		ticker, errTicker = s.exchange.GetTicker(ctx, instID)
	}()
	wg.Wait()

	degrade := func(field string, err error) {
		if err == nil {
			return
		}
		snap.Degraded = append(snap.Degraded, field)
		log.Warnf("analytics sub-read %s failed, degrading: %v", field, err)
	}

	degrade("order_book", errBook)
	if errBook == nil {
		snap.OrderBook = book
	}
	degrade("candles", errRecent)
	if errRecent == nil && recent != nil {
		snap.Candles = recent
	}
	degrade("historical_candles", errHistory)
	if errHistory == nil && history != nil {
		snap.HistoricalCandles = history
	}
	degrade("open_orders", errOpen)
	if errOpen == nil && open != nil {
		snap.OpenOrders = open
	}
	degrade("balances", errBal)
	if errBal == nil {
		snap.Balances[baseCcy] = baseBal
		snap.Balances[quoteCcy] = quoteBal
	}
	degrade("ticker", errTicker)
	if errTicker == nil {
		snap.Ticker = ticker
		snap.Indicators = indicatorsFromTicker(ticker)
	}

	snap.Success = true
	return snap
}

func zeroIndicators() map[string]string {
	return map[string]string{
		"current_price": "0",
		"volume_24h":    "0",
		"change_24h":    "0",
		"high_24h":      "0",
		"low_24h":       "0",
	}
}

// indicatorsFromTicker derives the headline figures. change_24h is the
// percentage move from the 24h open; if either side fails to parse the
// indicator stays "0".
func indicatorsFromTicker(t *types.Ticker) map[string]string {
	ind := zeroIndicators()
	if t.Last != "" {
		ind["current_price"] = t.Last
	}
	if t.Vol24h != "" {
		ind["volume_24h"] = t.Vol24h
	}
	if t.High24h != "" {
		ind["high_24h"] = t.High24h
	}
	if t.Low24h != "" {
		ind["low_24h"] = t.Low24h
	}
	last, errLast := decimal.NewFromString(t.Last)
	open, errOpen := decimal.NewFromString(t.Open24h)
	if errLast == nil && errOpen == nil && !open.IsZero() {
		change := last.Sub(open).Div(open).Mul(decimal.NewFromInt(100))
		ind["change_24h"] = change.Round(4).String()
	}
	return ind
}
