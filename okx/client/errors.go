package client

import (
	"errors"
	"fmt"
)

// TransportError wraps a network-level failure (DNS, TLS, timeout). The
// request never produced an exchange response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExchangeError is an answer from the exchange that is not a success:
// either a non-2xx HTTP status or a 2xx envelope with a non-zero code.
// Code and Msg are surfaced verbatim and never reinterpreted.
type ExchangeError struct {
	HTTPStatus int
	Code       string
	Msg        string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange error (http %d, code %s): %s", e.HTTPStatus, e.Code, e.Msg)
}

// AsTransportError unwraps err into a TransportError if it is one.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsExchangeError unwraps err into an ExchangeError if it is one.
func AsExchangeError(err error) (*ExchangeError, bool) {
	var ee *ExchangeError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
