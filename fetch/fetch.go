package fetch

import (
	"context"
	"net/url"
)

// Options carries everything the caller resolved for one network call.
type Options struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, ...).
	Method string
	// Mode is an opaque transport policy string (e.g. "cors"). It is passed
	// through unmodified; individual Fetcher implementations consume what
	// they can express and ignore the rest.
	Mode string
	// Cache is an opaque cache policy string (e.g. "no-cache").
	Cache string
	// Credentials is an opaque credentials policy string (e.g. "include").
	Credentials string
	// Headers are the fully resolved request headers.
	Headers map[string]string
	// Body is the encoded request body. Nil or empty means no body.
	Body []byte
}

// Response is the surface of one completed exchange: the HTTP status plus
// zero-argument decoders for the common body shapes. Decoders may be called
// any number of times; implementations buffer the body.
type Response interface {
	// Status returns the HTTP status code.
	Status() int
	// JSON decodes the body as JSON into a generic value.
	JSON() (any, error)
	// Text returns the body as a string.
	Text() (string, error)
	// Blob returns the raw body bytes.
	Blob() ([]byte, error)
	// Form decodes the body as URL-encoded form data.
	Form() (url.Values, error)
}

// Fetcher issues a single network call. Implementations own all transport
// concerns (connections, TLS, platform timeouts); the caller owns request
// construction and response interpretation.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) (Response, error)
}
