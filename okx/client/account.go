package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okxbot/gookx/okx/types"
)

// GetBalance reads the available/total balance for one currency.
//
// Parsing is deliberately best-effort: balance reads are advisory, so an
// empty data array, a missing currency entry, or a non-numeric field all
// yield a zero balance with a warn log instead of an error. Only
// transport and exchange failures are returned as errors.
func (c *Client) GetBalance(ctx context.Context, ccy string) (types.Balance, error) {
	zero := types.Balance{Currency: ccy}

	path := fmt.Sprintf("%s?ccy=%s", EndpointBalance, ccy)
	envelope, err := c.doGet(ctx, path, true)
	if err != nil {
		return zero, err
	}

	var data []types.BalanceData
	if err := decodeData(envelope, &data); err != nil {
		log.Warnf("balance response for %s did not decode: %v, treating as zero", ccy, err)
		return zero, nil
	}
	if len(data) == 0 {
		log.Warnf("balance response for %s has empty data array, treating as zero", ccy)
		return zero, nil
	}

	for _, detail := range data[0].Details {
		if detail.Ccy != ccy {
			continue
		}
		avail := parseBalanceField(ccy, "availBal", detail.AvailBal)
		total := parseBalanceField(ccy, "eq", detail.Eq)
		if total == 0 {
			total = parseBalanceField(ccy, "cashBal", detail.CashBal)
		}
		return types.Balance{Currency: ccy, Available: avail, Total: total}, nil
	}

	log.Warnf("no %s entry in balance details, treating as zero", ccy)
	return zero, nil
}

// parseBalanceField converts one string field, logging and zeroing
// anything non-numeric.
func parseBalanceField(ccy, field, raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warnf("non-numeric %s for %s: %q, treating as zero", field, ccy, raw)
		return 0
	}
	return v
}
