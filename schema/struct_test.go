package schema_test

import (
	"errors"
	"testing"

	"github.com/adamwoolhether/httpq/schema"
	"github.com/google/go-cmp/cmp"
)

type address struct {
	City string `json:"city" validate:"required"`
}

type account struct {
	ID      int      `json:"id"`
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email,omitempty" validate:"omitempty,email"`
	Address *address `json:"address,omitempty"`
}

type window struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (w *window) Validate() error {
	if w.From > w.To {
		return errors.New("from must not be after to")
	}
	return nil
}

func TestStruct(t *testing.T) {
	testCases := map[string]struct {
		value     any
		opts      []schema.StructOption
		exp       account
		expIssues []schema.Issue
	}{
		"valid": {
			value: `{"id":1,"name":"alice","email":"alice@example.com"}`,
			exp:   account{ID: 1, Name: "alice", Email: "alice@example.com"},
		},
		"typeMismatch": {
			value:     `{"id":"1","name":"alice"}`,
			expIssues: []schema.Issue{{Path: "id", Message: "Expected number, received string"}},
		},
		"nestedTypeMismatch": {
			value:     `{"id":1,"name":"alice","address":{"city":7}}`,
			expIssues: []schema.Issue{{Path: "address.city", Message: "Expected string, received number"}},
		},
		"missingRequired": {
			value:     `{"id":1}`,
			expIssues: []schema.Issue{{Path: "name", Message: "name is required"}},
		},
		"nestedRequired": {
			value:     `{"id":1,"name":"alice","address":{}}`,
			expIssues: []schema.Issue{{Path: "address.city", Message: "city is required"}},
		},
		"invalidEmail": {
			value:     `{"id":1,"name":"alice","email":"nope"}`,
			expIssues: []schema.Issue{{Path: "email", Message: "email must be a valid email address"}},
		},
		"unknownAllowed": {
			value: `{"id":1,"name":"alice","role":"admin"}`,
			exp:   account{ID: 1, Name: "alice"},
		},
		"unknownStrict": {
			value:     `{"id":1,"name":"alice","role":"admin"}`,
			opts:      []schema.StructOption{schema.Strict()},
			expIssues: []schema.Issue{{Path: "role", Message: "Unrecognized key(s) in object: 'role'"}},
		},
		"array": {
			value:     `[1,2]`,
			expIssues: []schema.Issue{{Message: "Expected object, received array"}},
		},
		"null": {
			value:     nil,
			expIssues: []schema.Issue{{Message: "Expected object, received null"}},
		},
		"alreadyTyped": {
			value: account{ID: 2, Name: "bob"},
			exp:   account{ID: 2, Name: "bob"},
		},
		"alreadyTypedInvalid": {
			value:     &account{ID: 2},
			expIssues: []schema.Issue{{Path: "name", Message: "name is required"}},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s := schema.Struct[account](tc.opts...)

			value := tc.value
			if str, ok := value.(string); ok {
				parsed, err := schema.Validate(schema.Any(), str)
				if err != nil {
					t.Fatalf("parsing fixture: %v", err)
				}
				value = parsed
			}

			res := s.SafeParse(value)
			if tc.expIssues != nil {
				if diff := cmp.Diff(tc.expIssues, res.Issues); diff != "" {
					t.Fatalf("issues mismatch (-want +got):\n%s", diff)
				}
				return
			}

			if !res.Success() {
				t.Fatalf("unexpected issues: %v", res.Issues)
			}
			if diff := cmp.Diff(tc.exp, res.Data); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStruct_SelfValidation(t *testing.T) {
	s := schema.Struct[window]()

	if _, err := schema.Validate(s, `{"from":1,"to":2}`); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	_, err := schema.Validate(s, `{"from":3,"to":2}`)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "from must not be after to" {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestStruct_Map(t *testing.T) {
	got, err := schema.Validate(schema.Struct[map[string]int](), `{"a":1,"b":2}`)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 2}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
