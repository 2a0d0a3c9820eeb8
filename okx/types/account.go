package types

// Balance is a point-in-time snapshot of one currency. It is advisory
// only: the exchange may act on the account between the read and any
// order that uses it.
type Balance struct {
	Currency  string
	Available float64
	Total     float64
}

// BalanceData wire shape of /account/balance entries.
type BalanceData struct {
	TotalEq string          `json:"totalEq"`
	Details []BalanceDetail `json:"details"`
}

// BalanceDetail per-currency balance fields. All numbers arrive as
// strings and may be empty.
type BalanceDetail struct {
	Ccy      string `json:"ccy"`
	AvailBal string `json:"availBal"`
	CashBal  string `json:"cashBal"`
	Eq       string `json:"eq"`
	FrozenBal string `json:"frozenBal"`
}
