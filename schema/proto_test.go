package schema_test

import (
	"testing"
	"time"

	"github.com/adamwoolhether/httpq/errs"
	"github.com/adamwoolhether/httpq/schema"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestProto_Int64Value(t *testing.T) {
	s := schema.Proto(func() *wrapperspb.Int64Value { return &wrapperspb.Int64Value{} })

	got, err := schema.Validate(s, "42")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.GetValue() != 42 {
		t.Fatalf("value = %d, want 42", got.GetValue())
	}

	_, err = schema.Validate(s, `{"value":"x"}`)
	if !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestProto_Timestamp(t *testing.T) {
	s := schema.Proto(func() *timestamppb.Timestamp { return &timestamppb.Timestamp{} })

	got, err := schema.Validate(s, `"2024-01-02T03:04:05Z"`)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got.AsTime().Equal(want) {
		t.Fatalf("time = %v, want %v", got.AsTime(), want)
	}

	if _, err := schema.Validate(s, "not a timestamp"); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}

func TestProto_Struct(t *testing.T) {
	s := schema.Proto(func() *structpb.Struct { return &structpb.Struct{} })

	got, err := schema.Validate(s, `{"name":"hello","tags":["a"]}`)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.GetFields()["name"].GetStringValue() != "hello" {
		t.Fatalf("name = %v", got.GetFields()["name"])
	}

	already := &structpb.Struct{}
	same, err := schema.Validate(s, already)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if same != already {
		t.Fatal("expected typed input to pass through unchanged")
	}
}
