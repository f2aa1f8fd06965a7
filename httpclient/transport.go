package httpclient

import (
	"context"
	"fmt"
	"net/http"
)

// TokenProvider yields valid myTarget access tokens. It is implemented
// by auth.TokenManager.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// BearerTransport is an http.RoundTripper that adds the myTarget
// bearer token to outgoing HTTP requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and
// injects the Authorization header before each request.
type BearerTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Tokens provides myTarget access tokens.
	Tokens TokenProvider
}

// RoundTrip implements http.RoundTripper. It fetches a valid token and
// adds it as "Authorization: Bearer <token>" before delegating to the
// base transport. The token fetch respects the request context's
// cancellation and deadline.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Tokens == nil {
		return nil, fmt.Errorf("httpclient: Tokens is nil")
	}

	token, err := t.Tokens.AccessToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("httpclient: failed to get token: %w", err)
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+token)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// NewBearerTransport creates a BearerTransport with the given token
// provider. The base transport defaults to http.DefaultTransport.
func NewBearerTransport(tokens TokenProvider, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &BearerTransport{
		Base:   base,
		Tokens: tokens,
	}
}
