package client

import (
	"maps"
	"slices"

	"github.com/adamwoolhether/httpq/schema"
)

// Request is the part of a request descriptor shared by every verb and seen
// by the pre-request [Hook].
type Request struct {
	// Endpoint is appended to the client's base URL.
	Endpoint string
	Params   Params
	Headers  map[string]string
}

// Hook rewrites the Request part of every descriptor before it is sent.
// It receives a copy whose Headers map is always non-nil, so it may write
// into it directly.
//
// Non-zero fields of the returned Request are merged over the original:
// Endpoint is replaced, Params and Headers are merged key by key with the
// hook's values taking precedence. Merging only adds or overrides. A hook
// cannot clear Endpoint, and it cannot remove a param or header the
// descriptor set; returning an empty Endpoint or dropping keys leaves the
// original values in place.
type Hook func(Request) Request

// GetRequest describes a GET query.
type GetRequest[R any] struct {
	Request

	// Response validates the response body. Without it the body is not
	// parsed and the query yields the zero R.
	Response schema.Schema[R]
	// Handler post-processes the validated response.
	Handler func(R) R
}

// DeleteRequest describes a DELETE query.
type DeleteRequest[R any] struct {
	Request

	Response schema.Schema[R]
	Handler  func(R) R
}

// MutateRequest describes a POST, PUT or PATCH query.
type MutateRequest[T, R any] struct {
	Request

	Body T
	// BodySchema validates Body before it is serialized. Without it no
	// body is sent.
	BodySchema schema.Schema[T]
	Response   schema.Schema[R]
	Handler    func(R) R
}

// descriptor is the verb-independent form every request is reduced to.
type descriptor[R any] struct {
	Request

	// body validates and serializes the payload. Nil sends no body.
	body     func() ([]byte, error)
	response schema.Schema[R]
	handler  func(R) R
}

func (g GetRequest[R]) descriptor() descriptor[R] {
	return descriptor[R]{Request: g.Request, response: g.Response, handler: g.Handler}
}

func (d DeleteRequest[R]) descriptor() descriptor[R] {
	return descriptor[R]{Request: d.Request, response: d.Response, handler: d.Handler}
}

func (m MutateRequest[T, R]) descriptor() descriptor[R] {
	d := descriptor[R]{Request: m.Request, response: m.Response, handler: m.Handler}
	if m.BodySchema != nil {
		d.body = func() ([]byte, error) {
			v, err := schema.Validate(m.BodySchema, any(m.Body))
			if err != nil {
				return nil, err
			}
			return encodeBody(v)
		}
	}
	return d
}

// source yields a descriptor from call-time arguments. Literal descriptors
// become a source that ignores its argument.
type source[A, D any] func(A) D

func literal[A, D any](d D) source[A, D] {
	return func(A) D { return d }
}

// clone copies the mutable parts of r so a hook cannot alter a shared
// descriptor. Headers is never nil in the copy.
func (r Request) clone() Request {
	r.Params = slices.Clone(r.Params)
	r.Headers = maps.Clone(r.Headers)
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	return r
}

// merge lays the non-zero fields of hooked over r.
func (r Request) merge(hooked Request) Request {
	out := r
	if hooked.Endpoint != "" {
		out.Endpoint = hooked.Endpoint
	}

	out.Params = r.Params.merge(hooked.Params)

	if len(hooked.Headers) > 0 {
		out.Headers = make(map[string]string, len(r.Headers)+len(hooked.Headers))
		maps.Copy(out.Headers, r.Headers)
		maps.Copy(out.Headers, hooked.Headers)
	}

	return out
}
