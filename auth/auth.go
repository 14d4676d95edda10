package auth

import (
	"encoding/base64"

	"github.com/fetchkit/fetchkit/client"
)

// Bearer returns a supplier producing a Bearer authorization header.
func Bearer(token string) client.HeaderSupplier {
	return func() map[string]string {
		return map[string]string{"authorization": "Bearer " + token}
	}
}

// BearerFunc returns a supplier that fetches the token on every send, for
// credentials that rotate (e.g. refreshed OAuth access tokens). A nil or
// empty token leaves the static headers unchanged.
func BearerFunc(token func() string) client.HeaderSupplier {
	return func() map[string]string {
		t := token()
		if t == "" {
			return nil
		}
		return map[string]string{"authorization": "Bearer " + t}
	}
}

// Basic returns a supplier producing an HTTP Basic authorization header.
func Basic(username, password string) client.HeaderSupplier {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return func() map[string]string {
		return map[string]string{"authorization": "Basic " + encoded}
	}
}

// APIKey returns a supplier producing an API key header. An empty name
// defaults to x-api-key.
func APIKey(name, key string) client.HeaderSupplier {
	if name == "" {
		name = "x-api-key"
	}
	return func() map[string]string {
		return map[string]string{name: key}
	}
}
