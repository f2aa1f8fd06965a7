// Package rest is a thin request layer for the myTarget REST API.
//
// Client resolves resource paths against the chosen environment
// (unversioned resources go to v1), encodes JSON bodies, and maps
// non-success responses through the auth package's error taxonomy.
// Bearer tokens are injected by the underlying HTTP client.
//
//	acquirer, _ := auth.New(creds, auth.WithSandbox())
//	tm := auth.NewTokenManager(acquirer)
//	client := rest.NewClient(tm, rest.WithSandbox())
//
//	var campaigns struct {
//	    Items []struct {
//	        ID int64 `json:"id"`
//	    } `json:"items"`
//	}
//	err := client.Get(ctx, "campaigns.json", nil, &campaigns)
package rest
