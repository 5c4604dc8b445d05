package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/httpq/client/throttle"
)

// Option is a functional option for configuring a [Client] via [New] or
// [Registry.Register].
type Option func(*options) error
type options struct {
	client            *http.Client
	doer              Doer
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracerProvider    trace.TracerProvider
	meterProvider     metric.MeterProvider
	hook              Hook
	requestIDHeader   string
}

// transportSet reports whether any option shaping the built http.Client was used.
func (o *options) transportSet() bool {
	return o.client != nil || o.rt != nil || o.timeout != nil || o.userAgent != "" ||
		o.throttle != nil || o.noFollowRedirects
}

// WithHTTPClient uses a copy of hc as the base [http.Client]. The remaining
// transport options are applied to the copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithDoer replaces the transport entirely. It cannot be combined with the
// options that configure the default [http.Client].
func WithDoer(d Doer) Option {
	return func(c *options) error {
		if d == nil {
			return errors.New("doer must not be nil")
		}
		c.doer = d
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracerProvider traces every query with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		c.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider records query metrics with mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *options) error {
		if mp == nil {
			return errors.New("meter provider must not be nil")
		}
		c.meterProvider = mp
		return nil
	}
}

// WithPreRequestHandler sets the initial pre-request [Hook].
// See [Client.SetPreRequestHandler].
func WithPreRequestHandler(h Hook) Option {
	return func(c *options) error {
		c.hook = h
		return nil
	}
}

// WithRequestIDHeader sends each query's invocation ID in the named header,
// unless the request already carries it.
func WithRequestIDHeader(name string) Option {
	return func(c *options) error {
		if name == "" {
			return fmt.Errorf("request id header: %w", errEmptyName)
		}
		c.requestIDHeader = http.CanonicalHeaderKey(name)
		return nil
	}
}

var errEmptyName = errors.New("name must not be empty")
