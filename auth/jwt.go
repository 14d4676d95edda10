package auth

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/fetchkit/fetchkit/client"
)

const defaultJWTTTL = time.Minute

// JWTConfig configures the per-request JWT supplier.
type JWTConfig struct {
	// Secret is the HMAC signing secret.
	Secret []byte
	// Issuer is the optional iss claim.
	Issuer string
	// Subject is the optional sub claim.
	Subject string
	// Audience is the optional aud claim.
	Audience []string
	// TTL is the token lifetime. Defaults to one minute.
	TTL time.Duration
}

// ApplyDefaults fills in zero-value fields.
func (c *JWTConfig) ApplyDefaults() {
	if c.TTL <= 0 {
		c.TTL = defaultJWTTTL
	}
}

// Validate checks that the configuration is usable.
func (c *JWTConfig) Validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("auth: jwt secret must not be empty")
	}
	return nil
}

// JWT returns a supplier that signs a fresh HS256 token on every send, so
// each request carries a current iat/exp window. If signing fails the
// supplier returns nil and the static headers are used unchanged.
func JWT(cfg JWTConfig) (client.HeaderSupplier, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return func() map[string]string {
		now := time.Now()
		claims := gojwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   cfg.Subject,
			Audience:  gojwt.ClaimStrings(cfg.Audience),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(cfg.TTL)),
		}
		token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(cfg.Secret)
		if err != nil {
			return nil
		}
		return map[string]string{"authorization": "Bearer " + signed}
	}, nil
}
