package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/okxbot/gookx/okx/signing"
	"github.com/okxbot/gookx/okx/types"
)

// newRestyClient builds the shared HTTP session. It is reused across all
// calls for connection pooling and is read-only with respect to
// credentials, so no locking is needed.
func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "gookx-gateway")
}

// doGet issues a GET. requestPath must already contain the query string:
// private endpoints sign over the full path, query included.
func (c *Client) doGet(ctx context.Context, requestPath string, private bool) (*types.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: "GET " + requestPath, Err: err}
	}
	req := c.http.R().SetContext(ctx)

	if private {
		headers, err := signing.AuthHeaders(c.creds, c.demo, http.MethodGet, requestPath, "")
		if err != nil {
			return nil, err
		}
		req.SetHeaders(headers)
	}

	resp, err := req.Get(requestPath)
	return c.classify("GET "+requestPath, resp, err)
}

// doPost issues a signed POST. The payload is marshaled once and the same
// bytes are both signed and sent; any drift between the two invalidates
// the signature.
func (c *Client) doPost(ctx context.Context, requestPath string, payload any) (*types.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: "POST " + requestPath, Err: err}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request body")
	}

	headers, err := signing.AuthHeaders(c.creds, c.demo, http.MethodPost, requestPath, string(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(requestPath)
	return c.classify("POST "+requestPath, resp, err)
}

// classify normalizes a resty outcome into the error taxonomy:
// TransportError for network/TLS failures, ExchangeError for non-2xx
// statuses and non-zero envelope codes, and a parsed envelope on success.
func (c *Client) classify(op string, resp *resty.Response, err error) (*types.Response, error) {
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	var envelope types.Response
	parseErr := json.Unmarshal(resp.Body(), &envelope)

	if resp.IsError() {
		ee := &ExchangeError{HTTPStatus: resp.StatusCode(), Code: envelope.Code, Msg: envelope.Msg}
		if parseErr != nil || ee.Msg == "" {
			ee.Msg = string(resp.Body())
		}
		return nil, ee
	}
	if parseErr != nil {
		return nil, errors.Wrapf(parseErr, "decode response for %s", op)
	}
	if !envelope.OK() {
		return &envelope, &ExchangeError{HTTPStatus: resp.StatusCode(), Code: envelope.Code, Msg: envelope.Msg}
	}
	return &envelope, nil
}

// decodeData unmarshals the envelope's data array into out.
func decodeData(envelope *types.Response, out any) error {
	if len(envelope.Data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(envelope.Data, out), "decode data array")
}
