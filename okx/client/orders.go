package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/okxbot/gookx/okx/types"
)

// Market-order sizing units. A market buy is sized in quote currency
// (notional, e.g. USDT); a market sell is sized in base-asset quantity
// (e.g. BTC). The two sides are not symmetric and OKX needs tgtCcy to
// disambiguate.
const (
	tgtCcyQuote = "quote_ccy"
	tgtCcyBase  = "base_ccy"
)

// newClientOrderID generates an OKX-legal clOrdId: letters and digits,
// at most 32 chars.
func newClientOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "gookx" + raw[:27]
}

// PlaceMarketOrder submits a market order. For buys, size is the notional
// to spend in quote currency; for sells, size is the base-asset quantity.
func (c *Client) PlaceMarketOrder(ctx context.Context, instID string, side types.Side, size decimal.Decimal) (*types.Order, error) {
	tgtCcy := tgtCcyBase
	if side == types.SideBuy {
		tgtCcy = tgtCcyQuote
	}
	req := types.OrderRequest{
		InstID:  instID,
		TdMode:  types.TradeModeCash,
		Side:    side,
		OrdType: types.OrderTypeMarket,
		Sz:      size.String(),
		TgtCcy:  tgtCcy,
		ClOrdID: newClientOrderID(),
	}
	ack, err := c.placeOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Infof("market %s accepted: inst=%s sz=%s ordId=%s", side, instID, req.Sz, ack.OrdID)
	return &types.Order{
		InstID:        instID,
		OrderID:       ack.OrdID,
		ClientOrderID: ack.ClOrdID,
		Side:          side,
		OrdType:       types.OrderTypeMarket,
		Size:          req.Sz,
		Code:          ack.SCode,
		Msg:           ack.SMsg,
	}, nil
}

// PlaceLimitOrder submits a resting limit order sized in base quantity.
func (c *Client) PlaceLimitOrder(ctx context.Context, instID string, side types.Side, size, price decimal.Decimal) (*types.Order, error) {
	req := types.OrderRequest{
		InstID:  instID,
		TdMode:  types.TradeModeCash,
		Side:    side,
		OrdType: types.OrderTypeLimit,
		Sz:      size.String(),
		Px:      price.String(),
		ClOrdID: newClientOrderID(),
	}
	ack, err := c.placeOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Infof("limit %s accepted: inst=%s sz=%s px=%s ordId=%s", side, instID, req.Sz, req.Px, ack.OrdID)
	return &types.Order{
		InstID:        instID,
		OrderID:       ack.OrdID,
		ClientOrderID: ack.ClOrdID,
		Side:          side,
		OrdType:       types.OrderTypeLimit,
		Size:          req.Sz,
		Price:         req.Px,
		Code:          ack.SCode,
		Msg:           ack.SMsg,
	}, nil
}

// PlaceStopOrder submits a trigger sell: once triggerPrice is crossed the
// exchange fires a market order for the full size. It rests on the algo
// book, not the regular one.
func (c *Client) PlaceStopOrder(ctx context.Context, instID string, size, triggerPrice decimal.Decimal) (*types.Order, error) {
	req := types.AlgoOrderRequest{
		InstID:      instID,
		TdMode:      types.TradeModeCash,
		Side:        types.SideSell,
		OrdType:     types.OrderTypeConditional,
		Sz:          size.String(),
		TriggerPx:   triggerPrice.String(),
		OrderPx:     "-1", // execute as market once triggered
		AlgoClOrdID: newClientOrderID(),
	}

	envelope, err := c.doPost(ctx, EndpointPlaceAlgo, req)
	if err != nil {
		return nil, refineOrderError(envelope, err)
	}
	var acks []types.OrderAck
	if err := decodeData(envelope, &acks); err != nil {
		return nil, err
	}
	if len(acks) == 0 {
		return nil, errors.New("order-algo response has empty data array")
	}
	ack := acks[0]
	if ack.SCode != "" && ack.SCode != "0" {
		return nil, &ExchangeError{HTTPStatus: 200, Code: ack.SCode, Msg: ack.SMsg}
	}
	log.Infof("trigger sell accepted: inst=%s sz=%s triggerPx=%s algoId=%s", instID, req.Sz, req.TriggerPx, ack.AlgoID)
	return &types.Order{
		InstID:       instID,
		AlgoID:       ack.AlgoID,
		Side:         types.SideSell,
		OrdType:      types.OrderTypeConditional,
		Size:         req.Sz,
		TriggerPrice: req.TriggerPx,
		Code:         ack.SCode,
		Msg:          ack.SMsg,
	}, nil
}

// placeOrder sends one request to /trade/order and unwraps the single ack.
func (c *Client) placeOrder(ctx context.Context, req types.OrderRequest) (*types.OrderAck, error) {
	envelope, err := c.doPost(ctx, EndpointPlaceOrder, req)
	if err != nil {
		return nil, refineOrderError(envelope, err)
	}
	var acks []types.OrderAck
	if err := decodeData(envelope, &acks); err != nil {
		return nil, err
	}
	if len(acks) == 0 {
		return nil, errors.New("trade/order response has empty data array")
	}
	if acks[0].SCode != "" && acks[0].SCode != "0" {
		return nil, &ExchangeError{HTTPStatus: 200, Code: acks[0].SCode, Msg: acks[0].SMsg}
	}
	return &acks[0], nil
}

// refineOrderError lifts the per-order sCode/sMsg out of a rejected
// placement envelope. OKX wraps rejections in a generic "Operation
// failed" top-level message; the data entry has the actual reason.
func refineOrderError(envelope *types.Response, err error) error {
	ee, ok := AsExchangeError(err)
	if !ok || envelope == nil {
		return err
	}
	var acks []types.OrderAck
	if decodeData(envelope, &acks) == nil && len(acks) > 0 && acks[0].SCode != "" && acks[0].SCode != "0" {
		ee.Code = acks[0].SCode
		ee.Msg = acks[0].SMsg
	}
	return ee
}

// CancelOrder cancels one order by exchange ID. Cancel is idempotent on
// the exchange side; the gateway issues it once and reports the echoed
// order identity.
func (c *Client) CancelOrder(ctx context.Context, instID, orderID string) (*types.CancelAck, error) {
	payload := map[string]string{"instId": instID, "ordId": orderID}
	envelope, err := c.doPost(ctx, EndpointCancelOrder, payload)
	if err != nil {
		return nil, err
	}
	var acks []types.CancelAck
	if err := decodeData(envelope, &acks); err != nil {
		return nil, err
	}
	if len(acks) == 0 {
		return nil, errors.New("cancel-order response has empty data array")
	}
	if acks[0].SCode != "" && acks[0].SCode != "0" {
		return nil, &ExchangeError{HTTPStatus: 200, Code: acks[0].SCode, Msg: acks[0].SMsg}
	}
	return &acks[0], nil
}

// GetOpenOrders lists pending orders, optionally filtered by instrument.
func (c *Client) GetOpenOrders(ctx context.Context, instID string) ([]types.Order, error) {
	path := EndpointOrdersPending
	if instID != "" {
		path = fmt.Sprintf("%s?instId=%s", path, instID)
	}
	envelope, err := c.doGet(ctx, path, true)
	if err != nil {
		return nil, err
	}
	var orders []types.Order
	if err := decodeData(envelope, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetFills queries recent executions.
func (c *Client) GetFills(ctx context.Context, filter types.FillFilter) ([]types.Fill, error) {
	path := EndpointFills
	params := make([]string, 0, 3)
	if filter.InstID != "" {
		params = append(params, "instId="+filter.InstID)
	}
	if filter.OrdID != "" {
		params = append(params, "ordId="+filter.OrdID)
	}
	if filter.Limit > 0 {
		params = append(params, fmt.Sprintf("limit=%d", filter.Limit))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}
	envelope, err := c.doGet(ctx, path, true)
	if err != nil {
		return nil, err
	}
	var fills []types.Fill
	if err := decodeData(envelope, &fills); err != nil {
		return nil, err
	}
	return fills, nil
}
