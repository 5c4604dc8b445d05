// Package schema validates and coerces untyped values into typed data.
//
// A [Schema] is an opaque capability: it receives a value and reports either
// the coerced data or a list of issues. [Validate] adds the one piece of
// behaviour every httpq query relies on: string inputs are parsed as JSON
// before they reach the schema, so raw response bodies can be checked
// against structured schemas while schemas that expect plain strings still
// work.
//
// Concrete engines are adapters implementing [Schema]: the primitives in this
// package, [Struct] for tagged Go structs and [Proto] for protobuf messages.
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-reflect"

	"github.com/adamwoolhether/httpq/errs"
)

// IssueSeparator joins issue messages into a validation error message.
const IssueSeparator = "\n"

// Issue is a single schema violation.
type Issue struct {
	// Path locates the offending value, e.g. "items.0.id". Empty for the root.
	Path    string
	Message string
}

// Result is the outcome of [Schema.SafeParse]. It succeeded if Issues is empty.
type Result[T any] struct {
	Data   T
	Issues []Issue
}

// Success reports whether the value was accepted.
func (r Result[T]) Success() bool {
	return len(r.Issues) == 0
}

// Schema validates value and coerces it into T without panicking.
type Schema[T any] interface {
	SafeParse(value any) Result[T]
}

// Func adapts a plain function into a [Schema].
type Func[T any] func(value any) Result[T]

// SafeParse implements Schema.
func (f Func[T]) SafeParse(value any) Result[T] {
	return f(value)
}

// OK builds a successful Result.
func OK[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fail builds a failed Result.
func Fail[T any](issues ...Issue) Result[T] {
	return Result[T]{Issues: issues}
}

// Validate runs value through s and returns the coerced data.
//
// A string value is first parsed as a single JSON document; if parsing fails
// the string is passed through unchanged. Numbers are decoded as json.Number.
// On failure the returned error is an *errs.Error of kind validation whose
// message joins every issue message with [IssueSeparator].
func Validate[T any](s Schema[T], value any) (T, error) {
	if str, ok := value.(string); ok {
		if parsed, ok := parseJSON(str); ok {
			value = parsed
		}
	}

	res := s.SafeParse(value)
	if res.Success() {
		return res.Data, nil
	}

	msgs := make([]string, len(res.Issues))
	for i, issue := range res.Issues {
		msgs[i] = issue.Message
	}

	var zero T
	return zero, errs.Validation(IssueSeparator, msgs...)
}

// parseJSON decodes s as exactly one JSON value.
func parseJSON(s string) (any, bool) {
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, false
	}

	if _, err := d.Token(); err != io.EOF {
		return nil, false
	}

	return v, true
}

// mismatch reports that value is not of the wanted JSON type.
func mismatch(want string, value any) Issue {
	return Issue{Message: fmt.Sprintf("Expected %s, received %s", want, received(value))}
}

// received names the JSON type of value.
func received(value any) string {
	if value == nil {
		return "null"
	}
	if _, ok := value.(json.Number); ok {
		return "number"
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return rv.Kind().String()
	}
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	default:
		return prefix + "." + path
	}
}
