// Package errs defines the classified error returned by every httpq operation.
//
// Failures fall into four kinds. [KindTransport] and [KindValidation] are
// produced when a query is invoked; [KindConfig] and [KindRegistry] are
// produced synchronously while clients and queries are being set up, so
// callers can tell setup mistakes apart from runtime failures.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags an [Error] with the stage that produced it.
type Kind string

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport Kind = "transport"
	// KindValidation covers request or response bodies rejected by a schema.
	KindValidation Kind = "validation"
	// KindConfig covers clients used before they are fully configured.
	KindConfig Kind = "config"
	// KindRegistry covers duplicate or unknown client keys.
	KindRegistry Kind = "registry"
)

var (
	// ErrUnexpectedStatus is wrapped by transport errors built from a non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrAuthFailure is joined with ErrUnexpectedStatus for 401 and 403 responses.
	ErrAuthFailure = errors.New("auth failure")
	// ErrClientExists is wrapped when a key is registered twice.
	ErrClientExists = errors.New("client already exists")
	// ErrClientNotFound is wrapped when an unknown key is looked up.
	ErrClientNotFound = errors.New("client does not exist")
	// ErrBaseURLNotSet is wrapped when a query is built or run without a base URL.
	ErrBaseURLNotSet = errors.New("base url not set")
)

// Error is the classified error type.
//
// Message is the human-readable text returned by Error(). The remaining fields
// are populated depending on the Kind:
//   - StatusCode and Body for transport errors caused by an HTTP response;
//   - Issues for validation errors, one entry per schema violation;
//   - Err for the underlying cause or sentinel, used by errors.Is / errors.As.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Body       string
	Issues     []string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// String renders the error with its kind, the way the CLI prints it.
func (e *Error) String() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Option customizes an Error built with [New].
type Option func(*Error)

// WithCause attaches the underlying error.
func WithCause(err error) Option {
	return func(e *Error) {
		e.Err = err
	}
}

// WithStatus records the HTTP status code and a (capped) response body.
func WithStatus(code int, body string) Option {
	return func(e *Error) {
		e.StatusCode = code
		e.Body = body
	}
}

// WithIssues records the individual validation messages.
func WithIssues(issues ...string) Option {
	return func(e *Error) {
		e.Issues = issues
	}
}

// New constructs an Error of the given kind.
func New(kind Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: kind, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transport builds a transport error carrying cause's message.
func Transport(cause error) *Error {
	return New(KindTransport, cause.Error(), WithCause(cause))
}

// Validation builds a validation error whose message is the issues joined by sep.
func Validation(sep string, issues ...string) *Error {
	return New(KindValidation, strings.Join(issues, sep), WithIssues(issues...))
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// KindOf reports the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	e, ok := As(err)
	if !ok {
		return ""
	}
	return e.Kind
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
