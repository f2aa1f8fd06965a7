package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shizacat/go-target-api/auth"
	"github.com/shizacat/go-target-api/httpclient"
)

// Client performs authenticated calls against the myTarget REST API.
// Authentication is delegated to the underlying HTTP client, which
// injects the bearer token per request.
type Client struct {
	endpoint auth.Endpoint
	hc       *http.Client
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithSandbox routes all requests to the sandbox environment.
func WithSandbox() ClientOption {
	return func(c *Client) {
		c.endpoint = auth.NewEndpoint(true)
	}
}

// WithEndpoint overrides the resolved endpoint.
func WithEndpoint(e auth.Endpoint) ClientOption {
	return func(c *Client) {
		c.endpoint = e
	}
}

// WithHTTPClient replaces the HTTP client entirely. The caller becomes
// responsible for token injection.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithTimeout sets the per-request timeout. Default is 30 seconds.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.hc.Timeout = timeout
	}
}

// NewClient creates a REST client that authenticates every request
// with tokens from the given provider, typically an auth.TokenManager.
func NewClient(tokens httpclient.TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: auth.NewEndpoint(false),
		hc:       httpclient.NewHTTPClient(tokens),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the endpoint the client sends requests to.
func (c *Client) Endpoint() auth.Endpoint {
	return c.endpoint
}

// Get performs a GET request against an API resource and decodes the
// response into out.
func (c *Client) Get(ctx context.Context, resource string, params url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, resource, params, nil, out)
}

// Post performs a POST request with a JSON-encoded body and decodes
// the response into out.
func (c *Client) Post(ctx context.Context, resource string, body, out any) error {
	return c.Do(ctx, http.MethodPost, resource, nil, body, out)
}

// Delete performs a DELETE request against an API resource.
func (c *Client) Delete(ctx context.Context, resource string) error {
	return c.Do(ctx, http.MethodDelete, resource, nil, nil, nil)
}

// Do performs an HTTP request against an API resource. Resources
// without a version prefix are served under v1. A non-nil body is
// JSON-encoded. On HTTP 200 the response is decoded into out (when out
// is non-nil); HTTP 204 returns nil without touching out; any other
// status maps through the shared error taxonomy.
func (c *Client) Do(ctx context.Context, method, resource string, params url.Values, body, out any) error {
	endpoint := c.endpoint.ResourceURL(resource)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("rest: building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &auth.NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &auth.NetworkError{URL: endpoint, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &auth.MalformedResponseError{Reason: "response is not valid JSON", Err: err}
		}
		return nil
	case http.StatusNoContent:
		return nil
	default:
		return auth.ResponseError(resp, raw)
	}
}
