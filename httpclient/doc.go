// Package httpclient offers HTTP client construction helpers for
// calling the myTarget API with automatic bearer token injection and
// TLS/mTLS options.
//
// It provides a fluent Builder that creates an http.Client whose
// transport attaches "Authorization: Bearer <token>" using any
// TokenProvider (typically auth.TokenManager), plus configurable TLS
// (custom CA, mTLS, insecure for tests), timeouts, base transports,
// and redirect handling. BearerTransport can wrap any RoundTripper.
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithCredentials(auth.Credentials{
//	        ClientID:     "client-id",
//	        ClientSecret: "client-secret",
//	    }, auth.WithSandbox()).
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://target-sandbox.my.com/api/v1/campaigns.json")
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewBearerTransport(tm, nil)
//	client := &http.Client{Transport: transport}
//
// All components are safe for concurrent use if the provided
// TokenProvider is.
package httpclient
