package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("schema: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Validator is implemented by types carrying their own cross-field checks.
// [Struct] calls it after tag validation passes.
type Validator interface {
	Validate() error
}

// StructOption configures [Struct].
type StructOption func(*structOpts)

type structOpts struct {
	strict bool
}

// Strict rejects objects carrying keys that T does not declare.
func Strict() StructOption {
	return func(opts *structOpts) {
		opts.strict = true
	}
}

type structSchema[T any] struct {
	strict bool
}

// Struct builds a schema for the Go type T.
//
// The input is re-encoded as JSON and decoded into T, so JSON type mismatches
// are reported per field (e.g. "Expected number, received string"). When T is
// a struct, its `validate:` tags are then checked with go-playground/validator
// and, if *T implements [Validator], its Validate method runs last.
func Struct[T any](opts ...StructOption) Schema[T] {
	var settings structOpts
	for _, opt := range opts {
		opt(&settings)
	}

	return structSchema[T]{strict: settings.strict}
}

// SafeParse implements Schema.
func (s structSchema[T]) SafeParse(value any) Result[T] {
	var out T

	switch v := value.(type) {
	case nil:
		return Fail[T](mismatch(jsonKind(reflect.TypeFor[T]()), nil))
	case T:
		out = v
	case *T:
		if v == nil {
			return Fail[T](mismatch(jsonKind(reflect.TypeFor[T]()), nil))
		}
		out = *v
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return Fail[T](Issue{Message: err.Error()})
		}

		d := json.NewDecoder(bytes.NewReader(b))
		d.UseNumber()
		if s.strict {
			d.DisallowUnknownFields()
		}

		if err := d.Decode(&out); err != nil {
			return Fail[T](decodeIssue(err))
		}
	}

	if issues := validateStruct(&out); len(issues) > 0 {
		return Fail[T](issues...)
	}

	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return Fail[T](Issue{Message: err.Error()})
		}
	}

	return OK(out)
}

// validateStruct checks the validate tags of *ptr when it points to a struct.
func validateStruct[T any](ptr *T) []Issue {
	var target any = ptr

	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Pointer {
		rv := reflect.ValueOf(*ptr)
		if rv.IsNil() {
			return nil
		}
		target = *ptr
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) {
		return []Issue{{Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrors))
	for _, verror := range verrors {
		issues = append(issues, Issue{
			Path:    fieldPath(verror.Namespace()),
			Message: customErrForTag(verror.Tag(), verror),
		})
	}
	return issues
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", verror.Field())
	default:
		return verror.Translate(translator)
	}
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}

// decodeIssue translates encoding/json decode failures into issues.
func decodeIssue(err error) Issue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		got, _, _ := strings.Cut(typeErr.Value, " ")
		if got == "bool" {
			got = "boolean"
		}

		return Issue{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), got),
		}
	}

	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		key := strings.Trim(strings.TrimPrefix(msg, unknownPrefix), `"`)
		return Issue{Path: key, Message: fmt.Sprintf("Unrecognized key(s) in object: '%s'", key)}
	}

	return Issue{Message: err.Error()}
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(rt reflect.Type) string {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	switch rt.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return rt.Kind().String()
	}
}
