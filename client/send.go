package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fetchkit/fetchkit/fetch"
)

// Overrides are per-call options. Non-zero fields win over the stored
// configuration for the duration of one Send.
type Overrides struct {
	// Method overrides the configured HTTP method.
	Method string
	// Mode overrides the transport mode policy.
	Mode string
	// Cache overrides the cache policy.
	Cache string
	// Credentials overrides the credentials policy.
	Credentials string
	// Headers are merged over the configured headers (lower-cased, override
	// wins).
	Headers map[string]string
	// ContentType is a convenience alias (json, form, urlencoded, multipart,
	// or a verbatim MIME value) applied to the content-type header.
	ContentType string
	// ResponseType overrides response body decoding.
	ResponseType ResponseType
	// Data is the request payload.
	Data Body
}

// Request is the ephemeral merged view of one send: stored configuration
// with overrides applied, dynamic headers resolved, and the body encoded.
// The pre-request hook receives it by pointer and may adjust headers before
// the network call.
type Request struct {
	// Method is the resolved HTTP method.
	Method string
	// Mode, Cache, Credentials are the resolved transport policy strings.
	Mode        string
	Cache       string
	Credentials string
	// Headers are the fully resolved request headers (lower-case keys).
	Headers map[string]string
	// ResponseType is the resolved response decoding mode.
	ResponseType ResponseType
	// Data is the caller-supplied payload, nil after GET query folding.
	Data Body
	// Body is the encoded wire payload, nil when no body is sent.
	Body []byte
}

// Send performs one request: merge configuration with overrides, resolve
// dynamic headers, encode the body, run the pre-request gate, issue exactly
// one network call, classify the status, decode the response, and run the
// post-response transform. Every failure is terminal; Send never retries.
func (c *Client) Send(ctx context.Context, url string, ov *Overrides) (any, error) {
	if url == "" {
		return nil, NewInvalidArgumentError("url must be a non-empty string")
	}
	if ov == nil {
		ov = &Overrides{}
	}

	req := c.merge(ov)

	// Dynamic headers resolve once per send, over the static headers.
	if c.cfg.DynamicHeaders != nil {
		if dynamic := c.cfg.DynamicHeaders(); dynamic != nil {
			for k, v := range dynamic {
				req.Headers[strings.ToLower(k)] = v
			}
		}
	}

	body, mpContentType, err := encodeBody(req.Headers[contentTypeHeader], req.Data)
	if err != nil {
		return nil, NewInvalidArgumentError(err.Error())
	}
	if mpContentType != "" {
		// Multipart bodies need the boundary-qualified content type.
		req.Headers[contentTypeHeader] = mpContentType
	}
	req.Body = body

	// GET requests never carry a body: structured data folds into the query
	// string, anything else is discarded.
	if strings.EqualFold(req.Method, "GET") && req.Data != nil {
		if query := foldQuery(req.Data); query != "" {
			if strings.Contains(url, "?") {
				url += "&" + query
			} else {
				url += "?" + query
			}
		}
		req.Data = nil
		req.Body = nil
	}

	if c.cfg.BeforeRequest != nil {
		if proceed := c.cfg.BeforeRequest(url, req); !proceed {
			return nil, NewCanceledError(url)
		}
	}

	fullURL := c.cfg.Prefix + url
	requestID := uuid.NewString()
	start := time.Now()
	c.cfg.Logger.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", fullURL).
		Msg("sending request")

	resp, err := c.cfg.Fetcher.Fetch(ctx, fullURL, fetch.Options{
		Method:      req.Method,
		Mode:        req.Mode,
		Cache:       req.Cache,
		Credentials: req.Credentials,
		Headers:     req.Headers,
		Body:        req.Body,
	})
	if err != nil {
		c.cfg.Logger.Debug().
			Str("request_id", requestID).
			Err(err).
			Msg("request failed")
		return nil, NewTransportError(err)
	}

	c.cfg.Logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.Status()).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	value, err := c.resolve(resp, req.ResponseType)
	if err != nil {
		return nil, err
	}

	if c.cfg.AfterResponse != nil {
		transformed, err := c.cfg.AfterResponse(value)
		if err != nil {
			return nil, NewHookError(err)
		}
		return transformed, nil
	}
	return value, nil
}

// merge produces the per-send request view: a copy of the stored
// configuration with overrides applied. The stored configuration is never
// mutated.
func (c *Client) merge(ov *Overrides) *Request {
	req := &Request{
		Method:       c.cfg.Method,
		Mode:         c.cfg.Mode,
		Cache:        c.cfg.Cache,
		Credentials:  c.cfg.Credentials,
		ResponseType: c.cfg.ResponseType,
		Headers:      make(map[string]string, len(c.cfg.Headers)+len(ov.Headers)),
		Data:         ov.Data,
	}
	for k, v := range c.cfg.Headers {
		req.Headers[k] = v
	}

	if ov.Method != "" {
		req.Method = ov.Method
	}
	if ov.Mode != "" {
		req.Mode = ov.Mode
	}
	if ov.Cache != "" {
		req.Cache = ov.Cache
	}
	if ov.Credentials != "" {
		req.Credentials = ov.Credentials
	}
	if ov.ResponseType != "" {
		req.ResponseType = ov.ResponseType
	}
	for k, v := range ov.Headers {
		req.Headers[strings.ToLower(k)] = v
	}
	if ov.ContentType != "" {
		req.Headers[contentTypeHeader] = canonicalContentType(ov.ContentType)
	}
	return req
}

// resolve classifies the response status and decodes the body.
func (c *Client) resolve(resp fetch.Response, rt ResponseType) (any, error) {
	status := resp.Status()

	if status >= 200 && status < 300 {
		// 204 carries no body; resolve with nil regardless of response type.
		if status == 204 {
			return nil, nil
		}
		return decode(resp, rt)
	}

	body, _ := resp.Blob()
	return nil, ClassifyStatus(status, body)
}

// decode applies the configured response type to a successful response.
func decode(resp fetch.Response, rt ResponseType) (any, error) {
	switch rt {
	case ResponseJSON:
		return resp.JSON()
	case ResponseText:
		return resp.Text()
	case ResponseBlob:
		return resp.Blob()
	case ResponseForm:
		return resp.Form()
	default:
		// Raw and anything unrecognized resolve with the response itself.
		return resp, nil
	}
}

// foldQuery renders a body as the GET query string. Structured fields use
// the urlencoded form encoding (spaces as +); raw bodies are assumed to be
// pre-encoded; prepared multipart bodies cannot fold and are dropped.
func foldQuery(body Body) string {
	switch b := body.(type) {
	case Fields:
		return formEncode(b)
	case Raw:
		return string(b)
	default:
		return ""
	}
}
