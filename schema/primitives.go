package schema

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/goccy/go-reflect"
)

// String accepts strings.
func String() Schema[string] {
	return Func[string](func(value any) Result[string] {
		s, ok := value.(string)
		if !ok {
			return Fail[string](mismatch("string", value))
		}
		return OK(s)
	})
}

// Bool accepts booleans.
func Bool() Schema[bool] {
	return Func[bool](func(value any) Result[bool] {
		b, ok := value.(bool)
		if !ok {
			return Fail[bool](mismatch("boolean", value))
		}
		return OK(b)
	})
}

// Number accepts any JSON or Go number and coerces it to float64.
func Number() Schema[float64] {
	return Func[float64](func(value any) Result[float64] {
		f, ok := toFloat(value)
		if !ok {
			return Fail[float64](mismatch("number", value))
		}
		return OK(f)
	})
}

// Int accepts integral numbers and coerces them to int64.
func Int() Schema[int64] {
	return Func[int64](func(value any) Result[int64] {
		if n, ok := value.(json.Number); ok {
			if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
				return OK(i)
			}
		}

		f, ok := toFloat(value)
		if !ok {
			return Fail[int64](mismatch("number", value))
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return Fail[int64](Issue{Message: "Expected integer, received float"})
		}
		if f >= 1<<63 {
			return Fail[int64](Issue{Message: "Number must be less than or equal to " + strconv.FormatInt(math.MaxInt64, 10)})
		}
		if f < math.MinInt64 {
			return Fail[int64](Issue{Message: "Number must be greater than or equal to " + strconv.FormatInt(math.MinInt64, 10)})
		}
		return OK(int64(f))
	})
}

// Any accepts every value as is.
func Any() Schema[any] {
	return Func[any](func(value any) Result[any] {
		return OK(value)
	})
}

// Array accepts a JSON array (or Go slice) whose elements all satisfy elem.
// Issues report the element index in their path.
func Array[T any](elem Schema[T]) Schema[[]T] {
	return Func[[]T](func(value any) Result[[]T] {
		if value == nil {
			return Fail[[]T](mismatch("array", value))
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return Fail[[]T](mismatch("array", value))
		}

		out := make([]T, 0, rv.Len())
		var issues []Issue
		for i := range rv.Len() {
			res := elem.SafeParse(rv.Index(i).Interface())
			if !res.Success() {
				for _, issue := range res.Issues {
					issue.Path = joinPath(strconv.Itoa(i), issue.Path)
					issues = append(issues, issue)
				}
				continue
			}
			out = append(out, res.Data)
		}

		if len(issues) > 0 {
			return Fail[[]T](issues...)
		}
		return OK(out)
	})
}

// Refine runs check on the data accepted by s and reports message when it returns false.
func Refine[T any](s Schema[T], check func(T) bool, message string) Schema[T] {
	return Func[T](func(value any) Result[T] {
		res := s.SafeParse(value)
		if !res.Success() {
			return res
		}
		if !check(res.Data) {
			return Fail[T](Issue{Message: message})
		}
		return res
	})
}

// Default substitutes def when value is null or missing.
func Default[T any](s Schema[T], def T) Schema[T] {
	return Func[T](func(value any) Result[T] {
		if value == nil {
			return OK(def)
		}
		return s.SafeParse(value)
	})
}

// Optional yields the zero value of T when value is null or missing.
func Optional[T any](s Schema[T]) Schema[T] {
	var zero T
	return Default(s, zero)
}

func toFloat(value any) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	if value == nil {
		return 0, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
