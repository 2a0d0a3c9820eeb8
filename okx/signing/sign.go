package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

// ErrMissingSecret is returned when the API secret is not configured.
// Signing must fail before any network call is attempted.
var ErrMissingSecret = errors.New("okx: api secret is not configured")

// Sign computes the OKX v5 request signature:
// base64(HMAC-SHA256(secret, timestamp + upper(method) + path + body)).
// The inputs are concatenated with no delimiter, so the signature is valid
// only for the exact (timestamp, method, path, body) tuple it was built
// over. A fresh timestamp is generated per call; signatures are never
// reused.
func Sign(secret, timestamp, method, path, body string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	message := timestamp + strings.ToUpper(method) + path + body
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// IsoTimestamp renders t as ISO-8601 UTC with millisecond precision and
// the +00:00 offset written as Z, e.g. 2025-07-25T12:30:45.123Z. This is
// the exact format OKX validates signatures against.
func IsoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
