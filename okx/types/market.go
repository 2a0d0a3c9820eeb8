package types

import (
	"encoding/json"
	"fmt"
)

// Ticker 24h market stats for one instrument. All prices are decimal
// strings as returned by the exchange.
type Ticker struct {
	InstID    string `json:"instId"`
	Last      string `json:"last"`
	AskPx     string `json:"askPx"`
	AskSz     string `json:"askSz"`
	BidPx     string `json:"bidPx"`
	BidSz     string `json:"bidSz"`
	Open24h   string `json:"open24h"`
	High24h   string `json:"high24h"`
	Low24h    string `json:"low24h"`
	Vol24h    string `json:"vol24h"`
	VolCcy24h string `json:"volCcy24h"`
	Ts        string `json:"ts"`
}

// BookLevel one price level of the order book.
type BookLevel struct {
	Price string
	Size  string
}

// UnmarshalJSON decodes the OKX array form ["px","sz","liqOrd","numOrd"].
func (l *BookLevel) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("book level has %d fields, want at least 2", len(fields))
	}
	l.Price = fields[0]
	l.Size = fields[1]
	return nil
}

// MarshalJSON re-encodes the level in the exchange's array form so
// snapshots round-trip.
func (l BookLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{l.Price, l.Size})
}

// OrderBook depth snapshot.
type OrderBook struct {
	Asks []BookLevel `json:"asks"`
	Bids []BookLevel `json:"bids"`
	Ts   string      `json:"ts"`
}

// Candle one OHLCV bar. OKX returns bars newest-first as
// [ts, o, h, l, c, vol, volCcy, ...].
type Candle struct {
	Ts     string
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

// UnmarshalJSON decodes the array form.
func (c *Candle) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 6 {
		return fmt.Errorf("candle has %d fields, want at least 6", len(fields))
	}
	c.Ts, c.Open, c.High, c.Low, c.Close, c.Volume =
		fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	return nil
}

// MarshalJSON re-encodes the bar in the exchange's array form.
func (c Candle) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{c.Ts, c.Open, c.High, c.Low, c.Close, c.Volume})
}

// Currency one entry from /asset/currencies.
type Currency struct {
	Ccy    string `json:"ccy"`
	Name   string `json:"name"`
	Chain  string `json:"chain"`
	CanDep bool   `json:"canDep"`
	CanWd  bool   `json:"canWd"`
	MinFee string `json:"minFee"`
	MinWd  string `json:"minWd"`
}

// SystemStatus one entry from /system/status. An empty data array means
// no maintenance scheduled, which the gateway treats as healthy.
type SystemStatus struct {
	Title string `json:"title"`
	State string `json:"state"`
	Begin string `json:"begin"`
	End   string `json:"end"`
}
