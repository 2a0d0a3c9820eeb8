package types

import "encoding/json"

// Response is the OKX v5 envelope. code "0" means success; anything else
// is an exchange-side rejection and msg carries the human-readable reason.
type Response struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// OK reports whether the exchange accepted the request.
func (r *Response) OK() bool {
	return r.Code == "0"
}
