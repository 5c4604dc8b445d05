package client_test

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/httpq/client"
)

func TestBuildURL(t *testing.T) {
	tests := map[string]struct {
		base     string
		endpoint string
		params   client.Params
		exp      string
	}{
		"params in order": {
			base:     "https://example.com/api/",
			endpoint: "users",
			params:   client.Params{{Key: "page", Value: 1}, {Key: "limit", Value: 10}},
			exp:      "https://example.com/api/users?page=1&limit=10",
		},
		"leading slash kept": {
			base:     "https://example.com/api",
			endpoint: "/users",
			exp:      "https://example.com/api/users",
		},
		"only one trailing slash stripped": {
			base:     "https://example.com/api//",
			endpoint: "users",
			exp:      "https://example.com/api//users",
		},
		"empty base": {
			endpoint: "/users",
			exp:      "/users",
		},
		"empty endpoint": {
			base: "https://x/api/",
			exp:  "https://x/api",
		},
		"empty params": {
			base:     "https://x",
			endpoint: "/a",
			params:   client.Params{},
			exp:      "https://x/a",
		},
		"no encoding": {
			base:     "https://x",
			endpoint: "/search",
			params:   client.Params{{Key: "q", Value: "a b&c"}},
			exp:      "https://x/search?q=a b&c",
		},
		"stringer value": {
			base:     "https://x",
			endpoint: "/hosts",
			params:   client.Params{{Key: "ip", Value: netip.MustParseAddr("10.0.0.1")}, {Key: "up", Value: true}},
			exp:      "https://x/hosts?ip=10.0.0.1&up=true",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := client.BuildURL(tc.base, tc.endpoint, tc.params)
			if got != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestParamsFromMap(t *testing.T) {
	got := client.ParamsFromMap(map[string]string{"limit": "10", "cursor": "abc", "page": "1"})

	exp := client.Params{
		{Key: "cursor", Value: "abc"},
		{Key: "limit", Value: "10"},
		{Key: "page", Value: "1"},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("unexpected params (-want +got):\n%s", diff)
	}

	if client.ParamsFromMap(nil) != nil {
		t.Error("expected nil params for nil map")
	}

	v, ok := got.Get("limit")
	if !ok || v != "10" {
		t.Errorf("expected limit=10, got %v (%t)", v, ok)
	}
	if _, ok := got.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}
