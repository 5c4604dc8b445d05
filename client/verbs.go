package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/adamwoolhether/httpq/query"
	"github.com/adamwoolhether/httpq/schema"
)

// Get builds a GET query from a literal descriptor.
func Get[R any](c *Client, req GetRequest[R]) (*query.Query[query.NoArgs, R], error) {
	return GetFunc[query.NoArgs, R](c, literal[query.NoArgs](req))
}

// GetFunc builds a GET query whose descriptor is produced from call-time
// arguments on every invocation.
func GetFunc[A, R any](c *Client, fn func(A) GetRequest[R]) (*query.Query[A, R], error) {
	if fn == nil {
		return nil, configError(errNilFactory)
	}
	return newQuery[A, R](c, http.MethodGet, func(args A) descriptor[R] { return fn(args).descriptor() })
}

// Delete builds a DELETE query from a literal descriptor.
func Delete[R any](c *Client, req DeleteRequest[R]) (*query.Query[query.NoArgs, R], error) {
	return DeleteFunc[query.NoArgs, R](c, literal[query.NoArgs](req))
}

// DeleteFunc builds a DELETE query from a descriptor factory.
func DeleteFunc[A, R any](c *Client, fn func(A) DeleteRequest[R]) (*query.Query[A, R], error) {
	if fn == nil {
		return nil, configError(errNilFactory)
	}
	return newQuery[A, R](c, http.MethodDelete, func(args A) descriptor[R] { return fn(args).descriptor() })
}

// Post builds a POST query from a literal descriptor.
func Post[T, R any](c *Client, req MutateRequest[T, R]) (*query.Query[query.NoArgs, R], error) {
	return PostFunc[query.NoArgs, T, R](c, literal[query.NoArgs](req))
}

// PostFunc builds a POST query from a descriptor factory.
func PostFunc[A, T, R any](c *Client, fn func(A) MutateRequest[T, R]) (*query.Query[A, R], error) {
	return mutate(c, http.MethodPost, fn)
}

// Put builds a PUT query from a literal descriptor.
func Put[T, R any](c *Client, req MutateRequest[T, R]) (*query.Query[query.NoArgs, R], error) {
	return PutFunc[query.NoArgs, T, R](c, literal[query.NoArgs](req))
}

// PutFunc builds a PUT query from a descriptor factory.
func PutFunc[A, T, R any](c *Client, fn func(A) MutateRequest[T, R]) (*query.Query[A, R], error) {
	return mutate(c, http.MethodPut, fn)
}

// Patch builds a PATCH query from a literal descriptor.
func Patch[T, R any](c *Client, req MutateRequest[T, R]) (*query.Query[query.NoArgs, R], error) {
	return PatchFunc[query.NoArgs, T, R](c, literal[query.NoArgs](req))
}

// PatchFunc builds a PATCH query from a descriptor factory.
func PatchFunc[A, T, R any](c *Client, fn func(A) MutateRequest[T, R]) (*query.Query[A, R], error) {
	return mutate(c, http.MethodPatch, fn)
}

var (
	errNilFactory = errors.New("request factory must not be nil")
	errNilClient  = errors.New("client must not be nil")
)

func mutate[A, T, R any](c *Client, method string, fn func(A) MutateRequest[T, R]) (*query.Query[A, R], error) {
	if fn == nil {
		return nil, configError(errNilFactory)
	}
	return newQuery[A, R](c, method, func(args A) descriptor[R] { return fn(args).descriptor() })
}

// newQuery checks that c has a base URL and wraps the invocation pipeline in
// a query named "<key> <METHOD>" with logging, tracing and metrics.
func newQuery[A, R any](c *Client, method string, src source[A, descriptor[R]]) (*query.Query[A, R], error) {
	if c == nil {
		return nil, configError(errNilClient)
	}
	if c.BaseURL() == "" {
		return nil, baseURLError(c.key)
	}

	name := c.key + " " + method

	fn := func(ctx context.Context, args A) (R, error) {
		var zero R

		d := src(args)

		baseURL, hook := c.state()
		if hook != nil {
			d.Request = d.Request.merge(hook(d.Request.clone()))
		}
		if baseURL == "" {
			return zero, baseURLError(c.key)
		}

		var body []byte
		if d.body != nil {
			b, err := d.body()
			if err != nil {
				return zero, err
			}
			body = b
		}

		text, err := c.fetch(ctx, method, BuildURL(baseURL, d.Endpoint, d.Params), d.Headers, body)
		if err != nil {
			return zero, err
		}

		if d.response == nil {
			return zero, nil
		}

		res, err := schema.Validate(d.response, text)
		if err != nil {
			return zero, err
		}
		if d.handler != nil {
			res = d.handler(res)
		}

		return res, nil
	}

	return query.New(name, fn,
		query.Logging[A, R](c.logger, name),
		query.Tracing[A, R](c.tracerProvider, name),
		query.Metrics[A, R](c.meterProvider, name),
	), nil
}
