package query

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/httpq/errs"
)

const (
	instrumentationName    = "github.com/adamwoolhether/httpq/query"
	instrumentationVersion = "0.1.0"
	metricKeyPrefix        = "httpq.query."
)

// Middleware decorates a Func.
type Middleware[A, R any] func(next Func[A, R]) Func[A, R]

// Chain composes mw so that mw[0] runs first. Nil entries are skipped.
func Chain[A, R any](mw ...Middleware[A, R]) Middleware[A, R] {
	return func(fn Func[A, R]) Func[A, R] {
		for _, mwFn := range slices.Backward(mw) {
			if mwFn != nil {
				fn = mwFn(fn)
			}
		}
		return fn
	}
}

// Logging logs the start and outcome of every invocation. Start and completion
// are logged at debug level, failures at error level.
// A nil logger disables the middleware.
func Logging[A, R any](logger *slog.Logger, name string) Middleware[A, R] {
	if logger == nil {
		return nil
	}

	return func(next Func[A, R]) Func[A, R] {
		return func(ctx context.Context, args A) (R, error) {
			id := InvocationID(ctx)
			logger.DebugContext(ctx, "query started", "query", name, "invocation_id", id)

			start := time.Now()
			res, err := next(ctx, args)
			since := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "query failed", "query", name, "invocation_id", id, "kind", status(err), "error", err, "since", since.String())
				return res, err
			}

			logger.DebugContext(ctx, "query completed", "query", name, "invocation_id", id, "since", since.String())

			return res, nil
		}
	}
}

// Tracing starts a client span around every invocation.
// A nil provider disables the middleware.
func Tracing[A, R any](tp trace.TracerProvider, name string) Middleware[A, R] {
	if tp == nil {
		return nil
	}

	tracer := tp.Tracer(instrumentationName, trace.WithInstrumentationVersion(instrumentationVersion))

	return func(next Func[A, R]) Func[A, R] {
		return func(ctx context.Context, args A) (R, error) {
			ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
			defer span.End()

			span.SetAttributes(
				attribute.String("httpq.query", name),
				attribute.String("httpq.invocation_id", InvocationID(ctx)),
			)

			res, err := next(ctx, args)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(attribute.String("httpq.error.kind", status(err)))
			}

			return res, err
		}
	}
}

// Metrics counts invocations and records their duration in milliseconds.
// A nil provider disables the middleware.
func Metrics[A, R any](mp metric.MeterProvider, name string) Middleware[A, R] {
	if mp == nil {
		return nil
	}

	meter := mp.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))

	counter, err := meter.Int64Counter(
		metricKeyPrefix+"count",
		metric.WithDescription("Number of query invocations"),
		metric.WithUnit("{invocations}"),
	)
	if err != nil {
		otel.Handle(err)
		return nil
	}

	duration, err := meter.Float64Histogram(
		metricKeyPrefix+"duration",
		metric.WithDescription("Duration of query invocations"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
		return nil
	}

	return func(next Func[A, R]) Func[A, R] {
		return func(ctx context.Context, args A) (R, error) {
			start := time.Now()
			res, err := next(ctx, args)
			elapsed := float64(time.Since(start).Microseconds()) / 1000

			attrs := metric.WithAttributes(
				attribute.String("query", name),
				attribute.String("status", status(err)),
			)
			counter.Add(ctx, 1, attrs)
			duration.Record(ctx, elapsed, attrs)

			return res, err
		}
	}
}

// status labels an invocation outcome: "success", the error kind, or "error".
func status(err error) string {
	if err == nil {
		return "success"
	}
	if kind := errs.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
