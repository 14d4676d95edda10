package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is the default Fetcher backed by net/http.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Fetcher over a fresh net/http client. No timeout is
// installed; lifetime control belongs to the caller's context and transport.
func NewClient() *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		httpClient: &http.Client{Transport: transport},
	}
}

// NewClientFrom wraps an existing *http.Client.
func NewClientFrom(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Fetch implements Fetcher. Of the transport policy strings only the cache
// policy maps onto the wire (as a Cache-Control request header); mode and
// credentials are browser-runtime concerns with no net/http equivalent.
func (c *Client) Fetch(ctx context.Context, rawURL string, opts Options) (Response, error) {
	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("fetch: create request: %w", err)
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.Cache == "no-cache" || opts.Cache == "no-store" {
		req.Header.Set("Cache-Control", opts.Cache)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read response body: %w", err)
	}

	return &bufferedResponse{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// bufferedResponse implements Response over a fully read body.
type bufferedResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r *bufferedResponse) Status() int {
	return r.status
}

func (r *bufferedResponse) JSON() (any, error) {
	var v any
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil, fmt.Errorf("fetch: decode json: %w", err)
	}
	return v, nil
}

func (r *bufferedResponse) Text() (string, error) {
	return string(r.body), nil
}

func (r *bufferedResponse) Blob() ([]byte, error) {
	return r.body, nil
}

func (r *bufferedResponse) Form() (url.Values, error) {
	return url.ParseQuery(string(r.body))
}
