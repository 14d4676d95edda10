package client

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fetchkit/fetchkit/fetch"
)

// Canonical content-type values produced by the ContentType alias table.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded;charset=UTF-8"
	ContentTypeMultipart = "multipart/form-data"
)

// contentTypeHeader is the normalized header key the pipeline branches on.
const contentTypeHeader = "content-type"

// ResponseType selects how a successful response body is decoded.
type ResponseType string

const (
	// ResponseJSON decodes the body as JSON into a generic value.
	ResponseJSON ResponseType = "json"
	// ResponseText returns the body as a string.
	ResponseText ResponseType = "text"
	// ResponseBlob returns the raw body bytes.
	ResponseBlob ResponseType = "blob"
	// ResponseForm decodes the body as URL-encoded form data.
	ResponseForm ResponseType = "form"
	// ResponseRaw returns the fetch.Response itself, undecoded.
	ResponseRaw ResponseType = "raw"
)

// HeaderSupplier produces headers computed at send time (e.g. a fresh auth
// token). The result is merged over the statically configured headers with
// the supplier winning on key collisions. A nil result leaves the static
// headers unchanged.
type HeaderSupplier func() map[string]string

// BeforeRequest is the pre-request gate. It receives the request URL (after
// query folding, before the prefix is applied) and the merged per-call
// request view. Returning false cancels the send before any network call.
type BeforeRequest func(url string, req *Request) bool

// AfterResponse transforms the decoded value of a successful send before it
// reaches the caller. A returned error fails the send.
type AfterResponse func(v any) (any, error)

// Config is the persistent per-client configuration. It is merged with
// per-call Overrides inside Send; the merged view is ephemeral.
type Config struct {
	// Method is the default HTTP method. Defaults to POST.
	Method string `yaml:"method" mapstructure:"method" validate:"omitempty,oneof=GET POST HEAD DELETE OPTIONS PUT PATCH"`

	// Mode is an opaque transport policy string passed through to the
	// Fetcher unmodified. Defaults to "cors".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Cache is an opaque cache policy string. Defaults to "no-cache".
	Cache string `yaml:"cache" mapstructure:"cache"`

	// Credentials is an opaque credentials policy string. Defaults to "include".
	Credentials string `yaml:"credentials" mapstructure:"credentials"`

	// Headers are default headers applied to all requests. Stored keys are
	// always lower-case; New and every setter normalize on write.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// DynamicHeaders is an optional supplier evaluated once per send and
	// merged over Headers.
	DynamicHeaders HeaderSupplier `yaml:"-" mapstructure:"-"`

	// ResponseType selects response body decoding. Defaults to json.
	ResponseType ResponseType `yaml:"response_type" mapstructure:"response_type" validate:"omitempty,oneof=json text blob form raw"`

	// Prefix is prepended to every request URL.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// BeforeRequest, if set, gates every send.
	BeforeRequest BeforeRequest `yaml:"-" mapstructure:"-"`

	// AfterResponse, if set, transforms every resolved value.
	AfterResponse AfterResponse `yaml:"-" mapstructure:"-"`

	// Fetcher issues the network calls. Defaults to fetch.NewClient().
	Fetcher fetch.Fetcher `yaml:"-" mapstructure:"-"`

	// Logger receives debug events for each send. The zero value logs
	// nothing.
	Logger zerolog.Logger `yaml:"-" mapstructure:"-"`

	// Extra holds unrecognized settings. They are stored and carried across
	// Create but otherwise ignored by the pipeline.
	Extra map[string]any `yaml:"extra" mapstructure:"extra"`
}

// ApplyDefaults fills in zero-value fields with the documented defaults and
// normalizes header keys to lower-case.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = http.MethodPost
	}
	if c.Mode == "" {
		c.Mode = "cors"
	}
	if c.Cache == "" {
		c.Cache = "no-cache"
	}
	if c.Credentials == "" {
		c.Credentials = "include"
	}
	if c.ResponseType == "" {
		c.ResponseType = ResponseJSON
	}
	c.Headers = lowerKeys(c.Headers)
	if _, ok := c.Headers[contentTypeHeader]; !ok {
		c.Headers[contentTypeHeader] = ContentTypeJSON
	}
	if c.Fetcher == nil {
		c.Fetcher = fetch.NewClient()
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return getValidator().Struct(c)
}

// canonicalContentType maps a short alias to its canonical MIME value. Any
// unrecognized alias is passed through verbatim.
func canonicalContentType(alias string) string {
	switch alias {
	case "json":
		return ContentTypeJSON
	case "form", "urlencoded":
		return ContentTypeForm
	case "multipart":
		return ContentTypeMultipart
	default:
		return alias
	}
}

// lowerKeys copies a header map with every key lower-cased. On duplicate
// keys after lower-casing, last write wins.
func lowerKeys(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = v
	}
	return out
}

// validMethod reports whether m is one of the supported HTTP methods.
func validMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodHead, http.MethodDelete,
		http.MethodOptions, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// validResponseType reports whether rt is a supported response type.
func validResponseType(rt ResponseType) bool {
	switch rt {
	case ResponseJSON, ResponseText, ResponseBlob, ResponseForm, ResponseRaw:
		return true
	}
	return false
}
