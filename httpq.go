// Package httpq binds endpoints, parameters and schemas into typed, reusable
// HTTP queries.
//
// Register a client once, build queries with the verb builders of package
// client, and invoke them as often as needed:
//
//	c, err := httpq.Register("api", "https://example.com/api")
//	q, err := client.Get(c, client.GetRequest[User]{
//		Request:  client.Request{Endpoint: "/users/1"},
//		Response: schema.Struct[User](),
//	})
//	u, err := q.Fetch(ctx, query.NoArgs{})
//
// Register and Use operate on [DefaultRegistry]. Programs that need isolated
// registries, tests for instance, use [client.NewRegistry] directly.
package httpq

import (
	"github.com/adamwoolhether/httpq/client"
)

// DefaultRegistry is the process-wide registry used by [Register] and [Use].
var DefaultRegistry = client.NewRegistry()

// Register creates a client under key in [DefaultRegistry].
// It fails if key is already registered.
func Register(key, baseURL string, opts ...client.Option) (*client.Client, error) {
	return DefaultRegistry.Register(key, baseURL, opts...)
}

// Use returns the client registered under key in [DefaultRegistry].
func Use(key string) (*client.Client, error) {
	return DefaultRegistry.Use(key)
}

// Keys lists the keys registered in [DefaultRegistry].
func Keys() []string {
	return DefaultRegistry.Keys()
}
