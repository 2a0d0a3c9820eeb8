package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/okxbot/gookx/okx/types"
	"github.com/okxbot/gookx/pkg/ratelimit"
)

var log = logrus.WithField("component", "okx_client")

// Client talks to the OKX v5 REST API. It is explicitly constructed and
// passed to every service that needs it — there is no package-level
// instance. The client holds no mutable state beyond the pooled HTTP
// session, so one instance may serve concurrent callers.
type Client struct {
	baseURL string
	creds   types.Credentials
	demo    bool
	http    *resty.Client
	limiter ratelimit.Limiter
}

// Option tweaks client construction.
type Option func(*Client)

// WithTimeout overrides the default 15s per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRateLimit overrides the default request pacing.
func WithRateLimit(l ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// New builds a client for the given exchange host. demo toggles the
// x-simulated-trading header on every private call.
func New(baseURL string, creds types.Credentials, demo bool, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		demo:    demo,
		http:    newRestyClient(baseURL, 15*time.Second),
		// Conservative shared budget; OKX enforces per-endpoint limits
		// around 20-60 requests per 2s.
		limiter: ratelimit.NewSlidingWindow(20, 2*time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Infof("okx client ready: host=%s demo=%v key=%s", baseURL, demo, creds.Fingerprint())
	return c
}

// Demo reports whether the client runs against the simulated engine.
func (c *Client) Demo() bool { return c.demo }

// Configured reports whether all three credential parts are present.
// Used by the health endpoint; it never reveals the values themselves.
func (c *Client) Configured() (key, secret, passphrase bool) {
	return c.creds.APIKey != "", c.creds.SecretKey != "", c.creds.Passphrase != ""
}
