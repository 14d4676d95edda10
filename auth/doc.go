// Package auth provides dynamic header suppliers for the fetchkit client.
//
// A supplier is evaluated once per send and merged over the statically
// configured headers, so credentials are always computed at request time:
//
//	c.HeaderFunc(auth.Bearer("my-token"))
//
// The JWT supplier signs a fresh short-lived token per request:
//
//	supplier, err := auth.JWT(auth.JWTConfig{
//	    Secret:  secret,
//	    Subject: "service-a",
//	    TTL:     time.Minute,
//	})
//	if err != nil {
//	    return err
//	}
//	c.HeaderFunc(supplier)
package auth
