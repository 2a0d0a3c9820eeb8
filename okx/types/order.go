package types

// OrderRequest wire shape of POST /trade/order.
type OrderRequest struct {
	InstID  string    `json:"instId"`
	TdMode  TradeMode `json:"tdMode"`
	Side    Side      `json:"side"`
	OrdType OrderType `json:"ordType"`
	Sz      string    `json:"sz"`
	Px      string    `json:"px,omitempty"`
	// TgtCcy disambiguates market-order sizing: "quote_ccy" means Sz is
	// notional (USDT), "base_ccy" means Sz is asset quantity (BTC).
	TgtCcy  string `json:"tgtCcy,omitempty"`
	ClOrdID string `json:"clOrdId,omitempty"`
}

// AlgoOrderRequest wire shape of POST /trade/order-algo (trigger orders).
type AlgoOrderRequest struct {
	InstID        string    `json:"instId"`
	TdMode        TradeMode `json:"tdMode"`
	Side          Side      `json:"side"`
	OrdType       OrderType `json:"ordType"`
	Sz            string    `json:"sz"`
	TriggerPx     string    `json:"triggerPx"`
	OrderPx       string    `json:"orderPx"` // -1 executes as market once triggered
	TriggerPxType string    `json:"triggerPxType,omitempty"`
	AlgoClOrdID   string    `json:"algoClOrdId,omitempty"`
}

// OrderAck per-order result inside the /trade/order response data array.
// SCode "0" means the individual order was accepted.
type OrderAck struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	AlgoID  string `json:"algoId,omitempty"`
	Tag     string `json:"tag,omitempty"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}

// Order is the gateway's view of an exchange order. The exchange owns the
// lifecycle; this is only ever an observation.
type Order struct {
	InstID        string    `json:"instId"`
	OrderID       string    `json:"ordId"`
	ClientOrderID string    `json:"clOrdId"`
	AlgoID        string    `json:"algoId,omitempty"`
	Side          Side      `json:"side"`
	OrdType       OrderType `json:"ordType"`
	Size          string    `json:"sz"`
	Price         string    `json:"px,omitempty"`
	TriggerPrice  string    `json:"triggerPx,omitempty"`
	State         string    `json:"state,omitempty"`
	Code          string    `json:"-"`
	Msg           string    `json:"-"`
}

// CancelAck wire shape of the /trade/cancel-order response data entry.
type CancelAck struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}

// Fill one execution record from /trade/fills.
type Fill struct {
	InstID  string `json:"instId"`
	OrdID   string `json:"ordId"`
	TradeID string `json:"tradeId"`
	FillPx  string `json:"fillPx"`
	FillSz  string `json:"fillSz"`
	Side    Side   `json:"side"`
	Fee     string `json:"fee"`
	FeeCcy  string `json:"feeCcy"`
	Ts      string `json:"ts"`
}

// FillFilter optional filters for the fills query.
type FillFilter struct {
	InstID string
	OrdID  string
	Limit  int
}
