package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OAuth2 grant types supported by the myTarget token endpoint.
const (
	GrantClientCredentials       = "client_credentials"
	GrantAgencyClientCredentials = "agency_client_credentials"
	GrantRefreshToken            = "refresh_token"
	GrantAuthorizationCode       = "authorization_code"
)

// Scope sets accepted by the user authorization endpoint.
var (
	AdsScopes     = []string{"read_ads", "read_payments", "create_ads"}
	AgencyScopes  = []string{"create_clients", "read_clients", "create_agency_payments"}
	ManagerScopes = []string{"read_manager_clients", "edit_manager_clients", "read_payments"}
)

const defaultTimeout = 30 * time.Second

// Acquirer exchanges client credentials for bearer tokens at the
// myTarget OAuth2 endpoint. Each call performs exactly one HTTP
// request; tokens are never cached, retried, or refreshed internally.
// Use TokenManager for caching.
type Acquirer struct {
	creds    Credentials
	endpoint Endpoint
	hc       *http.Client
	timeout  time.Duration
}

// Option is a functional option for configuring an Acquirer.
type Option func(*Acquirer)

// WithSandbox routes all requests to the sandbox environment.
func WithSandbox() Option {
	return func(a *Acquirer) {
		a.endpoint = NewEndpoint(true)
	}
}

// WithEndpoint overrides the resolved endpoint. Mostly useful to pin a
// pre-built Endpoint shared with a rest.Client.
func WithEndpoint(e Endpoint) Option {
	return func(a *Acquirer) {
		a.endpoint = e
	}
}

// WithTimeout bounds each token exchange when the default HTTP client
// is in use. Default is 30 seconds. Ignored, in any option order, when
// a custom HTTP client is supplied via WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Acquirer) {
		a.timeout = timeout
	}
}

// WithHTTPClient sets the HTTP client used for token requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Acquirer) {
		a.hc = hc
	}
}

// New creates an Acquirer for the given credentials. The production
// endpoint is used unless WithSandbox or WithEndpoint says otherwise.
func New(creds Credentials, opts ...Option) (*Acquirer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	a := &Acquirer{
		creds:    creds,
		endpoint: NewEndpoint(false),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.hc == nil {
		a.hc = &http.Client{Timeout: a.timeout}
	}
	return a, nil
}

// Endpoint returns the endpoint the acquirer sends requests to.
func (a *Acquirer) Endpoint() Endpoint {
	return a.endpoint
}

// RequestClientToken obtains a token via the client_credentials grant.
func (a *Acquirer) RequestClientToken(ctx context.Context) (*Token, error) {
	return a.RequestToken(ctx, GrantClientCredentials, nil)
}

// RequestAgencyClientToken obtains a token on behalf of an agency
// client via the agency_client_credentials grant.
func (a *Acquirer) RequestAgencyClientToken(ctx context.Context, agencyClientName string) (*Token, error) {
	return a.RequestToken(ctx, GrantAgencyClientCredentials, url.Values{
		"agency_client_name": {agencyClientName},
	})
}

// RefreshAccessToken exchanges a refresh token for a fresh access token.
func (a *Acquirer) RefreshAccessToken(ctx context.Context, refreshToken string) (*Token, error) {
	return a.RequestToken(ctx, GrantRefreshToken, url.Values{
		"refresh_token": {refreshToken},
	})
}

// RequestUserToken exchanges an authorization code obtained from the
// user authorization flow for an access token.
func (a *Acquirer) RequestUserToken(ctx context.Context, code string) (*Token, error) {
	return a.RequestToken(ctx, GrantAuthorizationCode, url.Values{
		"code": {code},
	})
}

// RequestToken performs a single token exchange with the given grant
// type. Extra parameters are merged into the form body. It returns the
// parsed Token on HTTP 200; otherwise a NetworkError, AuthError,
// ValidationError, APIError, or MalformedResponseError.
func (a *Acquirer) RequestToken(ctx context.Context, grantType string, extra url.Values) (*Token, error) {
	form := url.Values{
		"grant_type":    {grantType},
		"client_id":     {a.creds.ClientID},
		"client_secret": {a.creds.ClientSecret},
	}
	for key, values := range extra {
		form[key] = values
	}

	body, err := a.postForm(ctx, a.endpoint.TokenURL(), form, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &MalformedResponseError{Reason: "token response is not valid JSON", Err: err}
	}
	if token.AccessToken == "" {
		return nil, &MalformedResponseError{Reason: "token response is missing access_token"}
	}
	return &token, nil
}

// DeleteTokens invalidates all tokens issued to the client. When
// username is non-empty, only that user's tokens are deleted. The
// server answers 204 on success.
func (a *Acquirer) DeleteTokens(ctx context.Context, username string) error {
	form := url.Values{
		"client_id":     {a.creds.ClientID},
		"client_secret": {a.creds.ClientSecret},
	}
	if username != "" {
		form.Set("username", username)
	}

	_, err := a.postForm(ctx, a.endpoint.TokenDeleteURL(), form, http.StatusNoContent)
	return err
}

// AuthorizeRequest is the result of building a user authorization URL.
type AuthorizeRequest struct {
	URL   string
	State string
}

// AuthorizeURL builds the URL a user visits to grant the application
// access in the authorization_code flow. When state is empty, a random
// hex value is generated; the caller must verify it on the redirect.
func (a *Acquirer) AuthorizeURL(scopes []string, state string) (AuthorizeRequest, error) {
	if state == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			return AuthorizeRequest{}, fmt.Errorf("auth: generating state: %w", err)
		}
		state = hex.EncodeToString(buf)
	}
	if len(scopes) == 0 {
		scopes = AdsScopes
	}

	query := url.Values{
		"response_type": {"code"},
		"client_id":     {a.creds.ClientID},
		"state":         {state},
		"scope":         {strings.Join(scopes, " ")},
	}
	return AuthorizeRequest{
		URL:   a.endpoint.AuthorizeURL() + "?" + query.Encode(),
		State: state,
	}, nil
}

// postForm sends a form-urlencoded POST and returns the body on the
// expected status. Other statuses map through ResponseError; transport
// failures become NetworkError.
func (a *Acquirer) postForm(ctx context.Context, endpoint string, form url.Values, wantStatus int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("auth: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}

	if resp.StatusCode != wantStatus {
		return nil, ResponseError(resp, body)
	}
	return body, nil
}
