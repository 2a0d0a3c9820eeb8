package client

// OKX v5 endpoint paths. Signatures are computed over these paths
// including the query string, so builders must append queries before
// signing.
const (
	// Account
	EndpointBalance = "/api/v5/account/balance"

	// Trade
	EndpointPlaceOrder    = "/api/v5/trade/order"
	EndpointPlaceAlgo     = "/api/v5/trade/order-algo"
	EndpointCancelOrder   = "/api/v5/trade/cancel-order"
	EndpointOrdersPending = "/api/v5/trade/orders-pending"
	EndpointFills         = "/api/v5/trade/fills"

	// Market data (public, unsigned)
	EndpointTicker         = "/api/v5/market/ticker"
	EndpointTickers        = "/api/v5/market/tickers"
	EndpointBooks          = "/api/v5/market/books"
	EndpointCandles        = "/api/v5/market/candles"
	EndpointHistoryCandles = "/api/v5/market/history-candles"

	// Misc (public)
	EndpointCurrencies   = "/api/v5/asset/currencies"
	EndpointSystemStatus = "/api/v5/system/status"
)
