package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/httpq/client/throttle"
)

// Client is a named holder of a base URL, an optional pre-request hook and
// the transport used by every query built from it.
//
// Queries keep a reference to their Client, so base URL and hook changes are
// seen by later invocations of queries that already exist.
type Client struct {
	key             string
	doer            Doer
	logger          *slog.Logger
	tracerProvider  trace.TracerProvider
	meterProvider   metric.MeterProvider
	requestIDHeader string

	mu      sync.RWMutex
	baseURL string
	hook    Hook
}

// New builds a standalone Client. Most callers use [Registry.Register],
// which also makes the Client available by key.
//
// Without transport options a fresh [http.Client] on [http.DefaultTransport]
// is used. Option errors are reported with kind config.
func New(key, baseURL string, optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, configError(fmt.Errorf("applying client option: %w", err))
		}
	}

	client := &Client{
		key:             key,
		logger:          slog.Default(),
		tracerProvider:  otel.GetTracerProvider(),
		meterProvider:   otel.GetMeterProvider(),
		requestIDHeader: opts.requestIDHeader,
		baseURL:         baseURL,
		hook:            opts.hook,
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.tracerProvider != nil {
		client.tracerProvider = opts.tracerProvider
	}
	if opts.meterProvider != nil {
		client.meterProvider = opts.meterProvider
	}

	if opts.doer != nil {
		if opts.transportSet() {
			return nil, configError(fmt.Errorf("client %s: WithDoer cannot be combined with http client options", key))
		}
		client.doer = opts.doer
		return client, nil
	}

	hc, err := client.httpClient(opts)
	if err != nil {
		return nil, configError(err)
	}
	client.doer = hc

	return client, nil
}

// httpClient assembles the *http.Client: base client, timeout, redirect
// policy, then the transport chain throttle -> user agent -> base transport.
func (c *Client) httpClient(opts options) (*http.Client, error) {
	hc := &http.Client{}
	if opts.client != nil {
		cpy := *opts.client
		hc = &cpy
	}

	if opts.timeout != nil {
		hc.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case hc.Transport != nil:
		transport = hc.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		logger := c.logger.With("client", c.key)
		rt, err := throttle.NewRoundTripper(*opts.throttle, func() *slog.Logger { return logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	hc.Transport = transport

	return hc, nil
}

// Key returns the key the Client was registered under.
func (c *Client) Key() string {
	return c.key
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL replaces the base URL and returns c.
func (c *Client) SetBaseURL(baseURL string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = baseURL
	return c
}

// PreRequestHandler returns the current hook, or nil.
func (c *Client) PreRequestHandler() Hook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hook
}

// SetPreRequestHandler replaces the pre-request hook and returns c.
// A nil hook disables it.
func (c *Client) SetPreRequestHandler(h Hook) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hook = h
	return c
}

// state reads the base URL and hook together.
func (c *Client) state() (string, Hook) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL, c.hook
}
