package services

import (
	"context"
	"errors"

	"github.com/okxbot/gookx/internal/ports"
	"github.com/okxbot/gookx/okx/types"
)

// ErrNoFillDetected means a buy reported success but the base-asset
// balance did not grow. Without a measurable acquired quantity the exit
// legs cannot be derived, so this is fatal to the buy protocol.
var ErrNoFillDetected = errors.New("no fill detected: balance delta <= 0 after buy")

// BalanceOracle snapshots a currency's available balance and measures the
// delta around an action. The delta doubles as a fill-size oracle because
// the market-order response does not state the filled quantity.
//
// The technique is racy by nature: anything else touching the same
// balance between the two snapshots skews the delta. Accepted limitation;
// the gateway assumes no concurrent flows on the traded account.
type BalanceOracle struct {
	balances ports.BalanceReader
}

func NewBalanceOracle(balances ports.BalanceReader) *BalanceOracle {
	return &BalanceOracle{balances: balances}
}

// Snapshot reads the current balance for ccy.
func (o *BalanceOracle) Snapshot(ctx context.Context, ccy string) (types.Balance, error) {
	return o.balances.GetBalance(ctx, ccy)
}

// ObserveDelta captures the ccy balance, runs action, captures again and
// returns the action's order together with the available-balance delta.
// A delta <= 0 after a purportedly successful buy returns
// ErrNoFillDetected alongside the order.
func (o *BalanceOracle) ObserveDelta(ctx context.Context, ccy string, action func() (*types.Order, error)) (*types.Order, float64, error) {
	before, err := o.balances.GetBalance(ctx, ccy)
	if err != nil {
		return nil, 0, err
	}

	order, err := action()
	if err != nil {
		return order, 0, err
	}

	after, err := o.balances.GetBalance(ctx, ccy)
	if err != nil {
		return order, 0, err
	}

	delta := after.Available - before.Available
	log.Debugf("balance delta for %s: before=%.8f after=%.8f delta=%.8f", ccy, before.Available, after.Available, delta)
	if delta <= 0 {
		return order, 0, ErrNoFillDetected
	}
	return order, delta, nil
}
