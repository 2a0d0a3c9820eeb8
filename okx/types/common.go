package types

// Side order direction
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType supported order types
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
	// OrderTypeConditional is an algo (trigger) order, placed on the
	// /trade/order-algo endpoint rather than /trade/order.
	OrderTypeConditional OrderType = "conditional"
)

// TradeMode spot trading uses "cash"; margin modes are out of scope.
type TradeMode string

const (
	TradeModeCash TradeMode = "cash"
)

// InstType instrument type for passthrough ticker queries
type InstType string

const (
	InstTypeSpot    InstType = "SPOT"
	InstTypeSwap    InstType = "SWAP"
	InstTypeFutures InstType = "FUTURES"
)

// Credentials OKX API key material. Immutable for process lifetime and
// never logged in full.
type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
}

// Fingerprint returns a loggable prefix of the API key.
func (c Credentials) Fingerprint() string {
	if len(c.APIKey) < 8 {
		return "unset"
	}
	return c.APIKey[:8] + "..."
}
