package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"

	"github.com/pkg/errors"

	"github.com/okxbot/gookx/okx/types"
)

// GetTicker fetches 24h stats for one instrument.
func (c *Client) GetTicker(ctx context.Context, instID string) (*types.Ticker, error) {
	path := fmt.Sprintf("%s?instId=%s", EndpointTicker, instID)
	envelope, err := c.doGet(ctx, path, false)
	if err != nil {
		return nil, err
	}
	var tickers []types.Ticker
	if err := decodeData(envelope, &tickers); err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return nil, errors.Errorf("no ticker data for %s", instID)
	}
	return &tickers[0], nil
}

// GetTickers fetches stats for every instrument of the given type.
// Passthrough: the raw data array is returned undecoded.
func (c *Client) GetTickers(ctx context.Context, instType types.InstType) (json.RawMessage, error) {
	path := fmt.Sprintf("%s?instType=%s", EndpointTickers, instType)
	envelope, err := c.doGet(ctx, path, false)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetOrderBook fetches the book to the given depth.
func (c *Client) GetOrderBook(ctx context.Context, instID string, depth int) (*types.OrderBook, error) {
	if depth <= 0 {
		depth = 5
	}
	path := fmt.Sprintf("%s?instId=%s&sz=%d", EndpointBooks, instID, depth)
	envelope, err := c.doGet(ctx, path, false)
	if err != nil {
		return nil, err
	}
	var books []types.OrderBook
	if err := decodeData(envelope, &books); err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, errors.Errorf("no order book data for %s", instID)
	}
	return &books[0], nil
}

// GetCandles fetches OHLCV bars, newest first. historical switches to the
// history endpoint, which serves bars older than the recent window.
func (c *Client) GetCandles(ctx context.Context, instID, bar string, limit int, historical bool) ([]types.Candle, error) {
	endpoint := EndpointCandles
	if historical {
		endpoint = EndpointHistoryCandles
	}
	path := fmt.Sprintf("%s?instId=%s&bar=%s&limit=%d", endpoint, instID, bar, limit)
	envelope, err := c.doGet(ctx, path, false)
	if err != nil {
		return nil, err
	}
	var candles []types.Candle
	if err := decodeData(envelope, &candles); err != nil {
		return nil, err
	}
	return candles, nil
}

// GetCurrencies fetches the currency list.
func (c *Client) GetCurrencies(ctx context.Context) ([]types.Currency, error) {
	envelope, err := c.doGet(ctx, EndpointCurrencies, false)
	if err != nil {
		return nil, err
	}
	var currencies []types.Currency
	if err := decodeData(envelope, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// GetSystemStatus fetches maintenance announcements. An empty list means
// nothing scheduled.
func (c *Client) GetSystemStatus(ctx context.Context) ([]types.SystemStatus, error) {
	envelope, err := c.doGet(ctx, EndpointSystemStatus, false)
	if err != nil {
		return nil, err
	}
	var statuses []types.SystemStatus
	if err := decodeData(envelope, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// ConnectionTest is the outcome of a connectivity probe.
type ConnectionTest struct {
	Status     string `json:"status"` // success | ssl_error | network_error | unknown_error
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// TestConnection probes the exchange with an unauthenticated status call
// and classifies what went wrong, with a hint for the operator.
func (c *Client) TestConnection(ctx context.Context) *ConnectionTest {
	_, err := c.GetSystemStatus(ctx)
	if err == nil {
		return &ConnectionTest{Status: "success", Message: "exchange reachable"}
	}

	te, ok := AsTransportError(err)
	if !ok {
		if ee, ok := AsExchangeError(err); ok {
			return &ConnectionTest{
				Status:  "unknown_error",
				Message: fmt.Sprintf("exchange answered with an error: %s", ee.Msg),
			}
		}
		return &ConnectionTest{Status: "unknown_error", Message: err.Error()}
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(te.Err, &certErr) {
		return &ConnectionTest{
			Status:     "ssl_error",
			Message:    te.Error(),
			Suggestion: "check system clock and CA certificates; a proxy may be intercepting TLS",
		}
	}
	var netErr net.Error
	if errors.As(te.Err, &netErr) && netErr.Timeout() {
		return &ConnectionTest{
			Status:     "network_error",
			Message:    te.Error(),
			Suggestion: "request timed out; check connectivity and whether the exchange host is reachable from this network",
		}
	}
	return &ConnectionTest{
		Status:     "network_error",
		Message:    te.Error(),
		Suggestion: "check DNS, firewall and proxy settings",
	}
}
