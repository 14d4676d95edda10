// Package fetch defines the network primitive the fetchkit client is built
// on: a single-call Fetcher contract plus a default adapter over net/http.
//
// The client package never constructs requests against net/http directly.
// It resolves everything (method, headers, encoded body, transport policy
// strings) into an Options value and hands it to a Fetcher. This keeps the
// request pipeline independent of the transport and lets tests substitute a
// fake Fetcher.
//
//	f := fetch.NewClient()
//	resp, err := f.Fetch(ctx, "https://api.example.com/users", fetch.Options{
//	    Method:  http.MethodGet,
//	    Headers: map[string]string{"accept": "application/json"},
//	})
package fetch
