// Package client builds typed HTTP queries against named clients.
//
// # Registering a Client
//
// A [Client] carries a key, a base URL and an optional pre-request [Hook].
// Register it once, then look it up anywhere:
//
//	reg := client.NewRegistry()
//	c, err := reg.Register("api", "https://example.com/api",
//		client.WithTimeout(10*time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//	c, err = reg.Use("api")
//
// # Building Queries
//
// The verb builders [Get], [Post], [Put], [Patch] and [Delete] take a literal
// descriptor; their ...Func variants take a factory invoked with the
// arguments of every [query.Query.Fetch] call:
//
//	users, err := client.Get(c, client.GetRequest[[]User]{
//		Request:  client.Request{Endpoint: "/users", Params: client.Params{{Key: "page", Value: 1}}},
//		Response: schema.Struct[[]User](),
//	})
//	list, err := users.Fetch(ctx, query.NoArgs{})
//
// Each invocation resolves the descriptor, applies the client's hook, builds
// the URL from the client's current base URL, validates and sends the body,
// then validates the response. Nothing is cached between invocations.
//
// # Errors
//
// Every failure is an [*errs.Error]. Non-2xx responses and network failures
// have kind transport, schema rejections have kind validation, and builder
// misuse has kind config or registry.
package client
