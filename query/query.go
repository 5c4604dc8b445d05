// Package query provides Query, a deferred and replayable unit of work.
//
// A Query wraps one operation. Every call to [Query.Fetch] runs the operation
// from scratch: nothing is retried, memoized or cached between calls, so the
// same Query can be fetched many times with different arguments, concurrently
// if need be.
package query

import (
	"context"

	"github.com/google/uuid"
)

// NoArgs is the argument type of queries that take no call-time arguments.
type NoArgs = struct{}

// Func is the operation wrapped by a Query.
type Func[A, R any] func(ctx context.Context, args A) (R, error)

// Query is a request template. It holds no state beyond its operation.
type Query[A, R any] struct {
	name string
	fn   Func[A, R]
}

// New wraps fn, applying mw in the order given: the first middleware is the
// outermost.
func New[A, R any](name string, fn Func[A, R], mw ...Middleware[A, R]) *Query[A, R] {
	return &Query[A, R]{
		name: name,
		fn:   Chain(mw...)(fn),
	}
}

// Name returns the name the Query was created with.
func (q *Query[A, R]) Name() string {
	return q.name
}

// Fetch runs the operation with args and returns its result or error unchanged.
// Each call is tagged with a fresh invocation ID, see [InvocationID].
func (q *Query[A, R]) Fetch(ctx context.Context, args A) (R, error) {
	ctx = context.WithValue(ctx, invocationKey, uuid.NewString())
	return q.fn(ctx, args)
}

type ctxKey int

const invocationKey ctxKey = iota + 1

// InvocationID returns the ID assigned by [Query.Fetch], or the nil UUID
// outside of a Fetch call.
func InvocationID(ctx context.Context) string {
	id, ok := ctx.Value(invocationKey).(string)
	if !ok {
		return uuid.Nil.String()
	}
	return id
}
