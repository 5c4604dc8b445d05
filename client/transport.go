package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/adamwoolhether/httpq/errs"
	"github.com/adamwoolhether/httpq/query"
)

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// fetch performs one request and returns the response body as text.
// Non-2xx responses and transport failures are returned as transport errors.
func (c *Client) fetch(ctx context.Context, method, rawURL string, headers map[string]string, body []byte) (string, error) {
	var payload io.Reader
	if body != nil {
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return "", errs.Transport(fmt.Errorf("instantiating request: %w", err))
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" && req.Header.Get(c.requestIDHeader) == "" {
		req.Header.Set(c.requestIDHeader, query.InvocationID(ctx))
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return "", transportError(err)
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		return "", statusError(resp, string(b))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Transport(fmt.Errorf("reading response body: %w", err))
	}

	return string(b), nil
}

// encodeBody serializes a validated request body. Protobuf messages use
// their canonical JSON mapping.
func encodeBody(v any) ([]byte, error) {
	var (
		b   []byte
		err error
	)

	if m, ok := v.(proto.Message); ok {
		b, err = protojson.Marshal(m)
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		err = fmt.Errorf("encoding request payload: %w", err)
		return nil, errs.New(errs.KindValidation, err.Error(), errs.WithCause(err))
	}

	return b, nil
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
