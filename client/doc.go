// Package client provides a configurable HTTP request client built on the
// fetch primitive.
//
// A Client owns one configuration (method, transport policy strings,
// headers, response decoding mode, URL prefix, lifecycle hooks) and exposes
// fluent setters, per-verb senders, and a core Send operation:
//
//	c, err := client.New(client.Config{Prefix: "https://api.example.com"})
//	if err != nil {
//	    return err
//	}
//	c.ContentType("json").
//	    Header("Accept", "application/json").
//	    SetBeforeRequest(func(url string, req *client.Request) bool {
//	        return !strings.HasPrefix(url, "/internal/")
//	    })
//
//	v, err := c.Post(ctx, "/users", client.Fields{"name": "Alice"}, nil)
//
// Send merges the stored configuration with per-call overrides, resolves
// dynamic headers, encodes the body from the resolved content type, runs
// the pre-request gate, issues exactly one network call, classifies the
// status into typed errors, decodes the response, and runs the
// post-response transform. There are no retries, timeouts, or cancellation
// beyond the context handed to the Fetcher.
package client
