package schema

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Proto builds a schema for a protobuf message using the canonical proto3
// JSON mapping. newFn returns an empty message to decode into. Unknown fields
// are discarded.
func Proto[T proto.Message](newFn func() T) Schema[T] {
	unmarshal := protojson.UnmarshalOptions{DiscardUnknown: true}

	return Func[T](func(value any) Result[T] {
		if m, ok := value.(T); ok {
			return OK(m)
		}

		b, err := json.Marshal(value)
		if err != nil {
			return Fail[T](Issue{Message: err.Error()})
		}

		m := newFn()
		if err := unmarshal.Unmarshal(b, m); err != nil {
			return Fail[T](Issue{Message: err.Error()})
		}

		return OK(m)
	})
}
