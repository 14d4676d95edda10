package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/fetchkit/fetchkit/client"
	"github.com/fetchkit/fetchkit/fetch"
)

func TestBearer(t *testing.T) {
	h := Bearer("abc123")()
	if got := h["authorization"]; got != "Bearer abc123" {
		t.Errorf("authorization = %q", got)
	}
}

func TestBearerFunc(t *testing.T) {
	token := "first"
	supplier := BearerFunc(func() string { return token })

	if got := supplier()["authorization"]; got != "Bearer first" {
		t.Errorf("authorization = %q", got)
	}

	token = "second"
	if got := supplier()["authorization"]; got != "Bearer second" {
		t.Errorf("rotated authorization = %q", got)
	}

	token = ""
	if h := supplier(); h != nil {
		t.Errorf("empty token should yield nil, got %v", h)
	}
}

func TestBasic(t *testing.T) {
	h := Basic("user", "pass")()
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
	if got := h["authorization"]; got != want {
		t.Errorf("authorization = %q, want %q", got, want)
	}
}

func TestAPIKey(t *testing.T) {
	h := APIKey("x-service-key", "k1")()
	if got := h["x-service-key"]; got != "k1" {
		t.Errorf("x-service-key = %q", got)
	}

	h = APIKey("", "k2")()
	if got := h["x-api-key"]; got != "k2" {
		t.Errorf("default header = %q", got)
	}
}

func TestJWT_SignsFreshToken(t *testing.T) {
	secret := []byte("test-secret")
	supplier, err := JWT(JWTConfig{
		Secret:  secret,
		Issuer:  "fetchkit-test",
		Subject: "service-a",
		TTL:     time.Minute,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := supplier()
	raw, ok := strings.CutPrefix(h["authorization"], "Bearer ")
	if !ok {
		t.Fatalf("authorization = %q, want Bearer token", h["authorization"])
	}

	var claims gojwt.RegisteredClaims
	token, err := gojwt.ParseWithClaims(raw, &claims, func(*gojwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !token.Valid {
		t.Fatal("token should be valid")
	}
	if claims.Issuer != "fetchkit-test" {
		t.Errorf("iss = %q", claims.Issuer)
	}
	if claims.Subject != "service-a" {
		t.Errorf("sub = %q", claims.Subject)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Minute+time.Second {
		t.Errorf("exp = %v, want about one minute out", claims.ExpiresAt)
	}
}

func TestJWT_EmptySecret(t *testing.T) {
	if _, err := JWT(JWTConfig{}); err == nil {
		t.Error("expected error for empty secret")
	}
}

// countingFetcher verifies supplier integration with the client pipeline.
type countingFetcher struct {
	headers map[string]string
}

func (f *countingFetcher) Fetch(_ context.Context, _ string, opts fetch.Options) (fetch.Response, error) {
	f.headers = opts.Headers
	return nil, context.Canceled
}

func TestSupplier_WiredIntoClient(t *testing.T) {
	f := &countingFetcher{}
	c, err := client.New(client.Config{Fetcher: f})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.HeaderFunc(Bearer("tok"))

	// The fake fetcher fails the call; only the outbound headers matter here.
	_, _ = c.Post(context.Background(), "/x", nil, nil)

	if got := f.headers["authorization"]; got != "Bearer tok" {
		t.Errorf("authorization = %q", got)
	}
}
