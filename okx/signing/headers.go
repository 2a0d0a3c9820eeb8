package signing

import (
	"time"

	"github.com/okxbot/gookx/okx/types"
)

// Auth header names required by every private OKX v5 endpoint.
const (
	HeaderAPIKey     = "OK-ACCESS-KEY"
	HeaderSign       = "OK-ACCESS-SIGN"
	HeaderTimestamp  = "OK-ACCESS-TIMESTAMP"
	HeaderPassphrase = "OK-ACCESS-PASSPHRASE"
	// HeaderSimulated flags the call as demo trading. Value "1" routes the
	// order to the simulated matching engine instead of the live one.
	HeaderSimulated = "x-simulated-trading"
)

// AuthHeaders builds the authenticated header set for one request. The
// timestamp is taken fresh from the clock here, so a header set is
// single-use by construction.
func AuthHeaders(creds types.Credentials, demo bool, method, path, body string) (map[string]string, error) {
	timestamp := IsoTimestamp(time.Now())
	sig, err := Sign(creds.SecretKey, timestamp, method, path, body)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		HeaderAPIKey:     creds.APIKey,
		HeaderSign:       sig,
		HeaderTimestamp:  timestamp,
		HeaderPassphrase: creds.Passphrase,
		"Content-Type":   "application/json",
	}
	if demo {
		headers[HeaderSimulated] = "1"
	}
	return headers, nil
}
