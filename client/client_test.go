package client

import (
	"net/http"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := c.Config()
	if cfg.Method != http.MethodPost {
		t.Errorf("default method = %q, want POST", cfg.Method)
	}
	if cfg.Mode != "cors" {
		t.Errorf("default mode = %q, want cors", cfg.Mode)
	}
	if cfg.Cache != "no-cache" {
		t.Errorf("default cache = %q, want no-cache", cfg.Cache)
	}
	if cfg.Credentials != "include" {
		t.Errorf("default credentials = %q, want include", cfg.Credentials)
	}
	if cfg.ResponseType != ResponseJSON {
		t.Errorf("default response type = %q, want json", cfg.ResponseType)
	}
	if got := cfg.Headers["content-type"]; got != ContentTypeJSON {
		t.Errorf("default content-type = %q, want %q", got, ContentTypeJSON)
	}
	if cfg.Prefix != "" {
		t.Errorf("default prefix = %q, want empty", cfg.Prefix)
	}
}

func TestNew_NormalizesHeaderKeys(t *testing.T) {
	c, err := New(Config{
		Headers: map[string]string{"Accept": "x", "X-Custom-Header": "y"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := c.Config()
	if _, ok := cfg.Headers["Accept"]; ok {
		t.Error("mixed-case key should not be stored")
	}
	if got := cfg.Headers["accept"]; got != "x" {
		t.Errorf("headers[accept] = %q, want x", got)
	}
	if got := cfg.Headers["x-custom-header"]; got != "y" {
		t.Errorf("headers[x-custom-header] = %q, want y", got)
	}
}

func TestNew_InvalidMethod(t *testing.T) {
	if _, err := New(Config{Method: "TELEPORT"}); err == nil {
		t.Error("expected validation error for unknown method")
	}
}

func TestNew_InvalidResponseType(t *testing.T) {
	if _, err := New(Config{ResponseType: "xml"}); err == nil {
		t.Error("expected validation error for unknown response type")
	}
}

func TestClient_Header_LowerCases(t *testing.T) {
	c := mustNew(t, Config{})
	c.Header("Authorization", "Bearer abc")

	if got := c.Config().Headers["authorization"]; got != "Bearer abc" {
		t.Errorf("headers[authorization] = %q", got)
	}
}

func TestClient_Header_EmptyKeyIgnored(t *testing.T) {
	c := mustNew(t, Config{})
	before := len(c.Config().Headers)
	c.Header("", "value")
	if got := len(c.Config().Headers); got != before {
		t.Errorf("empty key should be ignored, header count %d -> %d", before, got)
	}
}

func TestClient_HeaderMap(t *testing.T) {
	c := mustNew(t, Config{})
	c.HeaderMap(map[string]string{"Accept": "application/json", "X-Trace": "1"})

	cfg := c.Config()
	if cfg.Headers["accept"] != "application/json" {
		t.Errorf("headers[accept] = %q", cfg.Headers["accept"])
	}
	if cfg.Headers["x-trace"] != "1" {
		t.Errorf("headers[x-trace] = %q", cfg.Headers["x-trace"])
	}
}

func TestClient_ContentType_Aliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"json", "application/json"},
		{"form", "application/x-www-form-urlencoded;charset=UTF-8"},
		{"urlencoded", "application/x-www-form-urlencoded;charset=UTF-8"},
		{"multipart", "multipart/form-data"},
		{"text/csv", "text/csv"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			c := mustNew(t, Config{})
			c.ContentType(tt.alias)
			if got := c.Config().Headers["content-type"]; got != tt.want {
				t.Errorf("content-type = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_SetPrefix(t *testing.T) {
	c := mustNew(t, Config{})
	c.SetPrefix("https://api.example.com")
	if got := c.Config().Prefix; got != "https://api.example.com" {
		t.Errorf("prefix = %q", got)
	}

	// Empty prefix is a no-op.
	c.SetPrefix("")
	if got := c.Config().Prefix; got != "https://api.example.com" {
		t.Errorf("empty SetPrefix should not clear prefix, got %q", got)
	}
}

func TestClient_SetHooks_NilIgnored(t *testing.T) {
	c := mustNew(t, Config{})
	c.SetBeforeRequest(func(string, *Request) bool { return true })
	c.SetAfterResponse(func(v any) (any, error) { return v, nil })

	c.SetBeforeRequest(nil)
	c.SetAfterResponse(nil)
	c.HeaderFunc(nil)

	cfg := c.Config()
	if cfg.BeforeRequest == nil {
		t.Error("nil SetBeforeRequest should not clear the hook")
	}
	if cfg.AfterResponse == nil {
		t.Error("nil SetAfterResponse should not clear the hook")
	}
}

func TestClient_Configure_Merge(t *testing.T) {
	c := mustNew(t, Config{})
	c.Configure(Config{
		Method:  http.MethodGet,
		Prefix:  "https://api.example.com",
		Headers: map[string]string{"X-Env": "test"},
		Extra:   map[string]any{"team": "payments"},
	})

	cfg := c.Config()
	if cfg.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", cfg.Method)
	}
	if cfg.Prefix != "https://api.example.com" {
		t.Errorf("prefix = %q", cfg.Prefix)
	}
	if cfg.Headers["x-env"] != "test" {
		t.Errorf("headers[x-env] = %q", cfg.Headers["x-env"])
	}
	if cfg.Extra["team"] != "payments" {
		t.Errorf("extra[team] = %v", cfg.Extra["team"])
	}
	// Untouched fields keep their defaults.
	if cfg.Mode != "cors" {
		t.Errorf("mode = %q, want cors", cfg.Mode)
	}
}

func TestClient_Configure_InvalidIgnored(t *testing.T) {
	c := mustNew(t, Config{})
	c.Configure(Config{Method: "TELEPORT", ResponseType: "xml"})

	cfg := c.Config()
	if cfg.Method != http.MethodPost {
		t.Errorf("invalid method should be ignored, got %q", cfg.Method)
	}
	if cfg.ResponseType != ResponseJSON {
		t.Errorf("invalid response type should be ignored, got %q", cfg.ResponseType)
	}
}

func TestClient_Create_Independent(t *testing.T) {
	c := mustNew(t, Config{Prefix: "https://one.example.com"})

	c2, err := c.Create(Config{Prefix: "https://two.example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Header("X-One", "1")
	c2.Header("X-Two", "2")

	if _, ok := c2.Config().Headers["x-one"]; ok {
		t.Error("mutating the original leaked into the created client")
	}
	if _, ok := c.Config().Headers["x-two"]; ok {
		t.Error("mutating the created client leaked into the original")
	}
	if c2.Config().Prefix != "https://two.example.com" {
		t.Errorf("created prefix = %q", c2.Config().Prefix)
	}
	if c.Config().Prefix != "https://one.example.com" {
		t.Errorf("original prefix = %q", c.Config().Prefix)
	}
}

func TestClient_FluentChaining(t *testing.T) {
	c := mustNew(t, Config{})
	got := c.SetPrefix("https://api.example.com").
		ContentType("form").
		Header("Accept", "application/json").
		HeaderMap(map[string]string{"X-Trace": "1"})
	if got != c {
		t.Error("setters should return the same instance")
	}
}

func mustNew(t *testing.T, cfg Config) *Client {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}
