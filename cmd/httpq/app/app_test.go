package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    r.PathValue("id"),
			"page":  r.URL.Query().Get("page"),
			"agent": r.UserAgent(),
			"token": r.Header.Get("X-Token"),
		})
	})
	mux.HandleFunc("GET /api/count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "12345678901234567890")
	})
	mux.HandleFunc("POST /api/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", r.Header.Get("Content-Type"))
		_, _ = io.Copy(w, r.Body)
	})
	mux.HandleFunc("GET /api/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return ts
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, stderr bytes.Buffer
	cmd := NewHTTPQCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestGet(t *testing.T) {
	ts := testServer(t)

	out, err := execute(t, "get", "/users/7",
		"--base-url", ts.URL+"/api",
		"-p", "page=2",
		"-H", "X-Token=secret",
		"--user-agent", "httpq-test/1.0",
	)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	exp := map[string]string{"id": "7", "page": "2", "agent": "httpq-test/1.0", "token": "secret"}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestGet_Expect(t *testing.T) {
	ts := testServer(t)

	tests := map[string]struct {
		expect string
		exp    string
		expErr string
	}{
		"any keeps precision": {expect: "any", exp: "12345678901234567890\n"},
		"number":              {expect: "number", exp: "12345678901234567000\n"},
		"string":              {expect: "string", expErr: "validation: Expected string, received number"},
		"unknown":             {expect: "uuid", expErr: `config: unknown --expect value "uuid": want any, string, number, int or bool`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "get", "count", "--base-url", ts.URL+"/api/", "--expect", tc.expect)

			if tc.expErr != "" {
				if err == nil {
					t.Fatalf("expected error, got output %q", out)
				}
				if got := FormatError(err); got != tc.expErr {
					t.Errorf("expected %q, got %q", tc.expErr, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if out != tc.exp {
				t.Errorf("expected %q, got %q", tc.exp, out)
			}
		})
	}
}

func TestPost_Data(t *testing.T) {
	ts := testServer(t)

	out, err := execute(t, "post", "/echo", "--base-url", ts.URL+"/api", "--data", `{"name":"ada","tags":["x"]}`)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	exp := "{\n  \"name\": \"ada\",\n  \"tags\": [\n    \"x\"\n  ]\n}\n"
	if out != exp {
		t.Errorf("expected %q, got %q", exp, out)
	}
}

func TestErrors(t *testing.T) {
	ts := testServer(t)

	tests := map[string]struct {
		args []string
		exp  string
	}{
		"server error": {
			args: []string{"get", "/broken", "--base-url", ts.URL + "/api"},
			exp:  "transport: 500 Internal Server Error",
		},
		"missing base url": {
			args: []string{"get", "/users/1"},
			exp:  "config: Base URL is not defined for cli client",
		},
		"bad param": {
			args: []string{"get", "/users/1", "--base-url", ts.URL, "-p", "page"},
			exp:  `config: invalid --param "page": want key=value`,
		},
		"bad throttle": {
			args: []string{"get", "/users/1", "--base-url", ts.URL, "--rps", "-1"},
			exp:  "config: applying client option: rps[-1] and burst[1] must be greater than zero",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(baseURLEnv, "")

			_, err := execute(t, tc.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := FormatError(err); got != tc.exp {
				t.Errorf("expected %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	ts := testServer(t)
	t.Setenv(baseURLEnv, ts.URL+"/api")

	out, err := execute(t, "get", "/users/3")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(out, `"id": "3"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	if _, err := execute(t, "get"); err == nil {
		t.Error("expected an error without ENDPOINT")
	}
	if _, err := execute(t, "get", "/x", "--data", "{}"); err == nil {
		t.Error("expected get to reject --data")
	}
	if got := FormatError(io.EOF); got != "Error: EOF" {
		t.Errorf("unexpected format %q", got)
	}
}
