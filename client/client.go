package client

import (
	"context"
	"net/http"
	"strings"
)

// Client is a configurable request client built on a fetch.Fetcher. It owns
// one Config, mutated only through the fluent setters and merged (never
// mutated) with per-call Overrides inside Send.
//
// A Client is safe to share across sequential sends. Mutating configuration
// concurrently with an in-flight Send is not synchronized; configure first,
// send after.
type Client struct {
	cfg Config
}

// New creates a client with cfg merged over the documented defaults
// (method POST, mode cors, cache no-cache, credentials include, content-type
// application/json, response type json). Header keys are normalized to
// lower-case immediately.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Create returns a new independent client: cfg is merged over defaults and
// the result shares no configuration storage with the receiver.
func (c *Client) Create(cfg Config) (*Client, error) {
	return New(cfg)
}

// Configure merges a partial Config into the stored configuration. Non-zero
// scalar fields win, headers are merged key by key (lower-cased), and
// invalid values are silently ignored.
func (c *Client) Configure(cfg Config) *Client {
	if cfg.Method != "" && validMethod(cfg.Method) {
		c.cfg.Method = cfg.Method
	}
	if cfg.Mode != "" {
		c.cfg.Mode = cfg.Mode
	}
	if cfg.Cache != "" {
		c.cfg.Cache = cfg.Cache
	}
	if cfg.Credentials != "" {
		c.cfg.Credentials = cfg.Credentials
	}
	if cfg.ResponseType != "" && validResponseType(cfg.ResponseType) {
		c.cfg.ResponseType = cfg.ResponseType
	}
	if cfg.Prefix != "" {
		c.cfg.Prefix = cfg.Prefix
	}
	for k, v := range cfg.Headers {
		c.cfg.Headers[strings.ToLower(k)] = v
	}
	if cfg.DynamicHeaders != nil {
		c.cfg.DynamicHeaders = cfg.DynamicHeaders
	}
	if cfg.BeforeRequest != nil {
		c.cfg.BeforeRequest = cfg.BeforeRequest
	}
	if cfg.AfterResponse != nil {
		c.cfg.AfterResponse = cfg.AfterResponse
	}
	if cfg.Fetcher != nil {
		c.cfg.Fetcher = cfg.Fetcher
	}
	for k, v := range cfg.Extra {
		if c.cfg.Extra == nil {
			c.cfg.Extra = make(map[string]any, len(cfg.Extra))
		}
		c.cfg.Extra[k] = v
	}
	return c
}

// SetPrefix sets the URL prefix. No-op for an empty prefix.
func (c *Client) SetPrefix(prefix string) *Client {
	if prefix != "" {
		c.cfg.Prefix = prefix
	}
	return c
}

// SetBeforeRequest installs the pre-request gate. No-op for nil.
func (c *Client) SetBeforeRequest(fn BeforeRequest) *Client {
	if fn != nil {
		c.cfg.BeforeRequest = fn
	}
	return c
}

// SetAfterResponse installs the post-response transform. No-op for nil.
func (c *Client) SetAfterResponse(fn AfterResponse) *Client {
	if fn != nil {
		c.cfg.AfterResponse = fn
	}
	return c
}

// Header sets one default header. The key is stored lower-cased. No-op for
// an empty key.
func (c *Client) Header(key, value string) *Client {
	if key != "" {
		c.cfg.Headers[strings.ToLower(key)] = value
	}
	return c
}

// HeaderMap merges a header map into the stored headers, lower-casing each
// key.
func (c *Client) HeaderMap(headers map[string]string) *Client {
	for k, v := range headers {
		if k != "" {
			c.cfg.Headers[strings.ToLower(k)] = v
		}
	}
	return c
}

// HeaderFunc installs the dynamic header supplier, evaluated once per send
// and merged over the static headers. No-op for nil.
func (c *Client) HeaderFunc(fn HeaderSupplier) *Client {
	if fn != nil {
		c.cfg.DynamicHeaders = fn
	}
	return c
}

// ContentType sets the content-type header from a short alias: json, form,
// urlencoded, multipart. Any other value is stored verbatim.
func (c *Client) ContentType(alias string) *Client {
	if alias != "" {
		c.cfg.Headers[contentTypeHeader] = canonicalContentType(alias)
	}
	return c
}

// Config returns a copy of the stored configuration.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.Headers = make(map[string]string, len(c.cfg.Headers))
	for k, v := range c.cfg.Headers {
		cfg.Headers[k] = v
	}
	return cfg
}

// Get sends a GET request. Structured data is folded into the URL query
// string; GET requests never carry a body.
func (c *Client) Get(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodGet, url, data, ov)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodPost, url, data, ov)
}

// Head sends a HEAD request.
func (c *Client) Head(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodHead, url, data, ov)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodDelete, url, data, ov)
}

// Options sends an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodOptions, url, data, ov)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodPut, url, data, ov)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, data Body, ov *Overrides) (any, error) {
	return c.sendVerb(ctx, http.MethodPatch, url, data, ov)
}

// GetForm sends a GET request with the urlencoded form content type forced.
func (c *Client) GetForm(ctx context.Context, url string, ov *Overrides) (any, error) {
	return c.sendForm(ctx, http.MethodGet, url, ov)
}

// PostForm sends a POST request with the urlencoded form content type forced.
func (c *Client) PostForm(ctx context.Context, url string, ov *Overrides) (any, error) {
	return c.sendForm(ctx, http.MethodPost, url, ov)
}

func (c *Client) sendVerb(ctx context.Context, method, url string, data Body, ov *Overrides) (any, error) {
	merged := Overrides{}
	if ov != nil {
		merged = *ov
	}
	merged.Method = method
	merged.Data = data
	return c.Send(ctx, url, &merged)
}

func (c *Client) sendForm(ctx context.Context, method, url string, ov *Overrides) (any, error) {
	merged := Overrides{}
	if ov != nil {
		merged = *ov
	}
	merged.Method = method
	merged.ContentType = "form"
	return c.Send(ctx, url, &merged)
}
