package auth

import "strings"

// API hosts for the two myTarget environments.
const (
	ProductionHost = "target.my.com"
	SandboxHost    = "target-sandbox.my.com"
)

// Resource paths relative to the API base URL.
const (
	tokenPath       = "v2/oauth2/token.json"
	tokenDeletePath = "v2/oauth2/token/delete.json"
	authorizePath   = "/oauth2/authorize"
)

// Endpoint is the resolved location of a myTarget API environment.
// It is fixed at construction time and safe to copy.
type Endpoint struct {
	host string
}

// NewEndpoint resolves the endpoint for the chosen environment.
// sandbox=false selects production.
func NewEndpoint(sandbox bool) Endpoint {
	if sandbox {
		return Endpoint{host: SandboxHost}
	}
	return Endpoint{host: ProductionHost}
}

// Host returns the API host without scheme or path.
func (e Endpoint) Host() string {
	if e.host == "" {
		return ProductionHost
	}
	return e.host
}

// Sandbox reports whether the endpoint targets the sandbox environment.
func (e Endpoint) Sandbox() bool {
	return e.host == SandboxHost
}

// BaseURL returns the API base URL, including the trailing slash.
func (e Endpoint) BaseURL() string {
	return "https://" + e.Host() + "/api/"
}

// TokenURL returns the OAuth2 token endpoint URL.
func (e Endpoint) TokenURL() string {
	return e.BaseURL() + tokenPath
}

// TokenDeleteURL returns the OAuth2 token invalidation endpoint URL.
func (e Endpoint) TokenDeleteURL() string {
	return e.BaseURL() + tokenDeletePath
}

// ResourceURL returns the full URL for an API resource. Resources
// without an explicit version prefix are served under v1.
func (e Endpoint) ResourceURL(resource string) string {
	resource = strings.TrimLeft(resource, "/")
	if !strings.HasPrefix(resource, "v") {
		resource = "v1/" + resource
	}
	return e.BaseURL() + resource
}

// AuthorizeURL returns the user-facing OAuth2 authorization endpoint URL.
func (e Endpoint) AuthorizeURL() string {
	return "https://" + e.Host() + authorizePath
}
