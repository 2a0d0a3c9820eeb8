package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okxbot/gookx/internal/services"
	"github.com/okxbot/gookx/okx/client"
	"github.com/okxbot/gookx/okx/types"
)

// fakeOKX is a minimal exchange backend. Balance reads pop from a
// per-currency queue so tests can script the delta the buy protocol sees.
type fakeOKX struct {
	mu       sync.Mutex
	balances map[string][]string
}

func (f *fakeOKX) popBalance(ccy string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	queue := f.balances[ccy]
	if len(queue) == 0 {
		return "0"
	}
	value := queue[0]
	if len(queue) > 1 {
		f.balances[ccy] = queue[1:]
	}
	return value
}

func envelope(data string) string {
	return fmt.Sprintf(`{"code":"0","msg":"","data":%s}`, data)
}

func (f *fakeOKX) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(client.EndpointBalance, func(w http.ResponseWriter, r *http.Request) {
		ccy := r.URL.Query().Get("ccy")
		bal := f.popBalance(ccy)
		fmt.Fprint(w, envelope(fmt.Sprintf(
			`[{"totalEq":"1000","details":[{"ccy":%q,"availBal":%q,"cashBal":%q,"eq":%q,"frozenBal":"0"}]}]`,
			ccy, bal, bal, bal)))
	})
	mux.HandleFunc(client.EndpointPlaceOrder, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[{"ordId":"1001","clOrdId":"gookxtest","sCode":"0","sMsg":""}]`))
	})
	mux.HandleFunc(client.EndpointPlaceAlgo, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[{"algoId":"2001","sCode":"0","sMsg":""}]`))
	})
	mux.HandleFunc(client.EndpointCancelOrder, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[{"ordId":"1001","clOrdId":"gookxtest","sCode":"0","sMsg":""}]`))
	})
	mux.HandleFunc(client.EndpointOrdersPending, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[]`))
	})
	mux.HandleFunc(client.EndpointTicker, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[{"instId":"BTC-USDT","last":"50000","open24h":"48000","high24h":"51000","low24h":"47500","vol24h":"1234"}]`))
	})
	mux.HandleFunc(client.EndpointBooks, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[{"asks":[["50001","0.5","0","1"]],"bids":[["49999","0.8","0","2"]],"ts":"1700000000000"}]`))
	})
	candles := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[["1700000000000","49900","50100","49800","50000","10"]]`))
	}
	mux.HandleFunc(client.EndpointCandles, candles)
	mux.HandleFunc(client.EndpointHistoryCandles, candles)
	mux.HandleFunc(client.EndpointCurrencies, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[{"ccy":"BTC","name":"Bitcoin"},{"ccy":"USDT","name":"Tether"}]`))
	})
	mux.HandleFunc(client.EndpointSystemStatus, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`[]`))
	})
	return mux
}

func newTestServer(t *testing.T, fake *fakeOKX) *Server {
	t.Helper()
	backend := httptest.NewServer(fake.handler())
	t.Cleanup(backend.Close)

	creds := types.Credentials{APIKey: "key", SecretKey: "secret", Passphrase: "pass"}
	exchange := client.New(backend.URL, creds, true)
	trading := services.NewTradingService(exchange, services.ExitDefaults{})
	analytics := services.NewAnalyticsService(exchange)
	return New(Config{Port: 0}, exchange, trading, analytics)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeOKX{balances: map[string][]string{}})
	router := srv.Router()

	rec, body := doJSON(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["demo"])
	creds := body["credentials"].(map[string]interface{})
	assert.Equal(t, true, creds["api_key"])
	assert.Equal(t, true, creds["secret_key"])
	assert.Equal(t, true, creds["passphrase"])
}

func TestBuyWithExitsEndpoint(t *testing.T) {
	t.Run("full protocol over HTTP", func(t *testing.T) {
		fake := &fakeOKX{balances: map[string][]string{"BTC": {"0", "0.0002"}}}
		router := newTestServer(t, fake).Router()

		rec, body := doJSON(t, router, http.MethodPost, "/api/v1/buy-with-exits",
			`{"inst_id":"BTC-USDT","notional":10}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"], "message: %v", body["message"])
		assert.Equal(t, "0.0002", body["acquired_qty"])
		assert.Equal(t, "50000", body["actual_price"])
		assert.Equal(t, "52500", body["take_profit_price"])
		assert.Equal(t, "49000", body["stop_loss_price"])
		require.NotNil(t, body["take_profit_order"])
		require.NotNil(t, body["stop_loss_order"])
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		router := newTestServer(t, &fakeOKX{balances: map[string][]string{}}).Router()

		rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/buy-with-exits", `{"notional":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid parameters are a 422", func(t *testing.T) {
		router := newTestServer(t, &fakeOKX{balances: map[string][]string{}}).Router()

		rec, body := doJSON(t, router, http.MethodPost, "/api/v1/buy-with-exits",
			`{"inst_id":"","notional":10}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, body["message"], "invalid request")
	})
}

func TestSellEndpoint(t *testing.T) {
	t.Run("sell all", func(t *testing.T) {
		fake := &fakeOKX{balances: map[string][]string{
			"BTC":  {"0.001234"},
			"USDT": {"61.7"},
		}}
		router := newTestServer(t, fake).Router()

		rec, body := doJSON(t, router, http.MethodPost, "/api/v1/sell",
			`{"inst_id":"BTC-USDT","sell_all":true}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"], "message: %v", body["message"])
		assert.Equal(t, "0.001234", body["sold_qty"])
	})

	t.Run("empty balance is a 422", func(t *testing.T) {
		fake := &fakeOKX{balances: map[string][]string{"BTC": {"0"}}}
		router := newTestServer(t, fake).Router()

		rec, body := doJSON(t, router, http.MethodPost, "/api/v1/sell",
			`{"inst_id":"BTC-USDT","sell_all":true}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, body["message"], "insufficient balance")
	})
}

func TestCancelEndpoint(t *testing.T) {
	router := newTestServer(t, &fakeOKX{balances: map[string][]string{}}).Router()

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/cancel-order",
		`{"inst_id":"BTC-USDT","order_id":"1001"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "1001", body["order_id"])
}

func TestMarketDataEndpoint(t *testing.T) {
	fake := &fakeOKX{balances: map[string][]string{
		"BTC":  {"0.25"},
		"USDT": {"1000"},
	}}
	router := newTestServer(t, fake).Router()

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/market-data?instId=BTC-USDT", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "BTC-USDT", body["inst_id"])
	require.NotNil(t, body["ticker"])
	indicators := body["indicators"].(map[string]interface{})
	assert.Equal(t, "50000", indicators["current_price"])
	assert.Nil(t, body["degraded"])
}

func TestCurrenciesEndpoint(t *testing.T) {
	router := newTestServer(t, &fakeOKX{balances: map[string][]string{}}).Router()

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/currencies?limit=1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["currencies"], 1)
}

func TestConnectionEndpoint(t *testing.T) {
	router := newTestServer(t, &fakeOKX{balances: map[string][]string{}}).Router()

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/test-connection", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
}
