package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/okxbot/gookx/internal/ports"
	"github.com/okxbot/gookx/okx/client"
	"github.com/okxbot/gookx/okx/types"
)

var log = logrus.WithField("component", "trading_service")

// ErrInsufficientBalance means the resolved sell quantity was zero or
// negative: nothing to sell.
var ErrInsufficientBalance = errors.New("insufficient balance: resolved sell quantity <= 0")

// ExitDefaults are the percentages applied when a request leaves them
// unset. Configuration-level values; the protocol only requires both > 0.
type ExitDefaults struct {
	TakeProfitPct float64
	StopLossPct   float64
}

// TradingService orchestrates the multi-step order protocols. It holds no
// state between calls: balances and orders are sourced fresh from the
// exchange every time, so concurrent invocations need no coordination.
type TradingService struct {
	exchange ports.Exchange
	oracle   *BalanceOracle
	defaults ExitDefaults
}

func NewTradingService(exchange ports.Exchange, defaults ExitDefaults) *TradingService {
	if defaults.TakeProfitPct <= 0 {
		defaults.TakeProfitPct = 5.0
	}
	if defaults.StopLossPct <= 0 {
		defaults.StopLossPct = 2.0
	}
	return &TradingService{
		exchange: exchange,
		oracle:   NewBalanceOracle(exchange),
		defaults: defaults,
	}
}

// BuyWithExitsParams inputs for the buy-with-exits protocol. Notional is
// the quote-currency amount to spend. Zero percentages fall back to the
// configured defaults.
type BuyWithExitsParams struct {
	InstID   string  `json:"inst_id"`
	Notional float64 `json:"notional"`
	TPPct    float64 `json:"tp_pct"`
	SLPct    float64 `json:"sl_pct"`
}

// BuyWithExitsResult structured outcome of the protocol. PartialFailure
// marks the distinct state where capital was spent but one or both exit
// legs are missing; whatever legs succeeded are preserved so the caller
// can complete protection manually.
type BuyWithExitsResult struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	PartialFailure  bool         `json:"partial_failure"`
	InstID          string       `json:"inst_id"`
	Notional        float64      `json:"notional"`
	AcquiredQty     string       `json:"acquired_qty"`
	ActualPrice     string       `json:"actual_price"`
	TakeProfitPrice string       `json:"take_profit_price"`
	StopLossPrice   string       `json:"stop_loss_price"`
	BuyOrder        *types.Order `json:"buy_order,omitempty"`
	TakeProfitOrder *types.Order `json:"take_profit_order,omitempty"`
	StopLossOrder   *types.Order `json:"stop_loss_order,omitempty"`
}

// BuyWithExits runs: market buy -> balance-delta measurement -> exit
// price derivation -> limit take-profit -> trigger stop-loss. The steps
// are strictly sequential because each depends on the previous step's
// observed result. Once the buy lands the protocol always runs to
// completion or partial failure; aborting would leave funds unprotected.
func (s *TradingService) BuyWithExits(ctx context.Context, p BuyWithExitsParams) *BuyWithExitsResult {
	result := &BuyWithExitsResult{InstID: p.InstID, Notional: p.Notional}

	if p.InstID == "" || p.Notional <= 0 {
		result.Message = fmt.Sprintf("invalid request: instId=%q notional=%v", p.InstID, p.Notional)
		return result
	}
	tpPct, slPct := p.TPPct, p.SLPct
	if tpPct == 0 {
		tpPct = s.defaults.TakeProfitPct
	}
	if slPct == 0 {
		slPct = s.defaults.StopLossPct
	}
	if tpPct <= 0 || slPct <= 0 {
		result.Message = fmt.Sprintf("invalid exit percentages: tp=%v sl=%v (both must be > 0)", tpPct, slPct)
		return result
	}

	baseCcy, _ := splitInstrument(p.InstID)
	notional := decimal.NewFromFloat(p.Notional)

	log.Infof("buy-with-exits start: inst=%s notional=%s tp=%.2f%% sl=%.2f%%", p.InstID, notional, tpPct, slPct)

	// Buy + measure. The balance delta is the only reliable fill-size
	// source here; the market-order ack does not carry it.
	buyOrder, delta, err := s.oracle.ObserveDelta(ctx, baseCcy, func() (*types.Order, error) {
		return s.exchange.PlaceMarketOrder(ctx, p.InstID, types.SideBuy, notional)
	})
	result.BuyOrder = buyOrder
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFillDetected):
			// Buy was acknowledged but nothing arrived. Exit orders cannot
			// be derived from an unknown quantity; report with zero acquired.
			result.AcquiredQty = "0"
			result.Message = "buy acknowledged but no fill detected (balance delta <= 0); no exit orders placed"
		default:
			result.Message = describeOrderError("market buy", err)
		}
		log.Errorf("buy-with-exits failed: %s", result.Message)
		return result
	}

	// Derive exit prices from the actual acquired quantity, not the
	// requested notional: the fill price may differ from any assumption.
	acquired := decimal.NewFromFloat(delta)
	actualPrice := notional.Div(acquired)
	tpPrice := actualPrice.Mul(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(tpPct).Div(decimal.NewFromInt(100))))
	slPrice := actualPrice.Mul(decimal.NewFromFloat(1).Sub(decimal.NewFromFloat(slPct).Div(decimal.NewFromInt(100))))

	result.AcquiredQty = acquired.String()
	result.ActualPrice = actualPrice.String()
	result.TakeProfitPrice = tpPrice.String()
	result.StopLossPrice = slPrice.String()

	log.Infof("acquired %s %s at ~%s, exits: tp=%s sl=%s", acquired, baseCcy, actualPrice, tpPrice, slPrice)

	// Both exit legs are attempted even if the first fails: any
	// protection is better than none once capital is committed.
	var failedLegs []string

	tpOrder, err := s.exchange.PlaceLimitOrder(ctx, p.InstID, types.SideSell, acquired, tpPrice)
	if err != nil {
		failedLegs = append(failedLegs, describeOrderError("take-profit", err))
		log.Errorf("take-profit leg failed: %v", err)
	} else {
		result.TakeProfitOrder = tpOrder
	}

	slOrder, err := s.exchange.PlaceStopOrder(ctx, p.InstID, acquired, slPrice)
	if err != nil {
		failedLegs = append(failedLegs, describeOrderError("stop-loss", err))
		log.Errorf("stop-loss leg failed: %v", err)
	} else {
		result.StopLossOrder = slOrder
	}

	if len(failedLegs) > 0 {
		// Capital is spent but protection is incomplete. Never retried
		// silently; the caller must complete protection manually.
		result.PartialFailure = true
		result.Message = fmt.Sprintf("buy filled (%s %s) but exit placement incomplete: %s",
			acquired, baseCcy, strings.Join(failedLegs, "; "))
		log.Warnf("buy-with-exits partial failure: %s", result.Message)
		return result
	}

	result.Success = true
	result.Message = fmt.Sprintf("bought %s %s at ~%s, take-profit at %s, stop-loss at %s",
		acquired, baseCcy, actualPrice, tpPrice, slPrice)
	log.Infof("buy-with-exits done: %s", result.Message)
	return result
}

// SellParams inputs for the sell protocol. SellAll sells the entire
// available base balance; otherwise Quantity is used, clamped to the
// available balance (never oversell).
type SellParams struct {
	InstID   string  `json:"inst_id"`
	Quantity float64 `json:"quantity"`
	SellAll  bool    `json:"sell_all"`
}

// SellResult structured outcome of the sell protocol. QuoteBalance is
// the post-sell quote-currency balance, a best-effort proxy for proceeds:
// fills may include other concurrent flows.
type SellResult struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	InstID        string       `json:"inst_id"`
	SoldQty       string       `json:"sold_qty"`
	Clamped       bool         `json:"clamped"`
	SellOrder     *types.Order `json:"sell_order,omitempty"`
	QuoteCurrency string       `json:"quote_currency"`
	QuoteBalance  float64      `json:"quote_balance"`
}

// Sell resolves a quantity (all or explicit, clamped to available) and
// places a market sell sized in base quantity.
func (s *TradingService) Sell(ctx context.Context, p SellParams) *SellResult {
	result := &SellResult{InstID: p.InstID}

	if p.InstID == "" {
		result.Message = "invalid request: instId is required"
		return result
	}
	if !p.SellAll && p.Quantity <= 0 {
		result.Message = fmt.Sprintf("invalid request: quantity=%v (must be > 0 unless sell_all)", p.Quantity)
		return result
	}

	baseCcy, quoteCcy := splitInstrument(p.InstID)
	result.QuoteCurrency = quoteCcy

	balance, err := s.oracle.Snapshot(ctx, baseCcy)
	if err != nil {
		result.Message = describeOrderError("balance read", err)
		return result
	}

	qty := balance.Available
	if !p.SellAll {
		qty = p.Quantity
		if qty > balance.Available {
			qty = balance.Available
			result.Clamped = true
			log.Warnf("sell quantity clamped to available: requested=%v available=%v", p.Quantity, balance.Available)
		}
	}
	if qty <= 0 {
		result.Message = fmt.Sprintf("%v: %s available=%v", ErrInsufficientBalance, baseCcy, balance.Available)
		log.Errorf("sell failed: %s", result.Message)
		return result
	}

	size := decimal.NewFromFloat(qty)
	order, err := s.exchange.PlaceMarketOrder(ctx, p.InstID, types.SideSell, size)
	if err != nil {
		result.Message = describeOrderError("market sell", err)
		log.Errorf("sell failed: %s", result.Message)
		return result
	}
	result.SellOrder = order
	result.SoldQty = size.String()

	// Best-effort proceeds estimate: current quote balance after the
	// sell, not a fill-derived figure.
	if quote, err := s.oracle.Snapshot(ctx, quoteCcy); err == nil {
		result.QuoteBalance = quote.Available
	} else {
		log.Warnf("post-sell quote balance read failed: %v", err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("sold %s %s, current %s balance %v", size, baseCcy, quoteCcy, result.QuoteBalance)
	log.Infof("sell done: %s", result.Message)
	return result
}

// CancelResult structured outcome of a cancel passthrough.
type CancelResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	OrderID       string `json:"order_id"`
	ClientOrderID string `json:"client_order_id,omitempty"`
}

// Cancel forwards a cancellation and echoes the exchange's view of the
// order identity. No retry: cancel is idempotent exchange-side.
func (s *TradingService) Cancel(ctx context.Context, instID, orderID string) *CancelResult {
	result := &CancelResult{OrderID: orderID}
	if instID == "" || orderID == "" {
		result.Message = "invalid request: instId and ordId are required"
		return result
	}

	ack, err := s.exchange.CancelOrder(ctx, instID, orderID)
	if err != nil {
		result.Message = describeOrderError("cancel", err)
		log.Errorf("cancel failed: %s", result.Message)
		return result
	}
	result.Success = true
	result.OrderID = ack.OrdID
	result.ClientOrderID = ack.ClOrdID
	result.Message = fmt.Sprintf("order %s cancelled", ack.OrdID)
	return result
}

// describeOrderError maps the client error taxonomy onto caller-facing
// messages. Exchange rejections pass through verbatim; transport errors
// carry a connectivity hint. Raw transport details never leak further up.
func describeOrderError(op string, err error) string {
	if ee, ok := client.AsExchangeError(err); ok {
		return fmt.Sprintf("%s rejected by exchange: code=%s msg=%s", op, ee.Code, ee.Msg)
	}
	if te, ok := client.AsTransportError(err); ok {
		return fmt.Sprintf("%s failed: %v (check network connectivity to the exchange)", op, te.Err)
	}
	return fmt.Sprintf("%s failed: %v", op, err)
}

// splitInstrument breaks "BTC-USDT" into base and quote currencies.
func splitInstrument(instID string) (base, quote string) {
	parts := strings.SplitN(instID, "-", 2)
	if len(parts) != 2 {
		return instID, ""
	}
	return parts[0], parts[1]
}
