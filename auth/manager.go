package auth

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Logger is an interface for optional logging in TokenManager.
// Implementations can log token refresh events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// TokenRequester yields fresh tokens from the OAuth2 server. It is
// implemented by Acquirer.
type TokenRequester interface {
	RequestClientToken(ctx context.Context) (*Token, error)
}

// TokenManager caches the token obtained from a TokenRequester and
// replaces it shortly before expiry. It is the caching layer above the
// stateless Acquirer and is safe for concurrent use.
type TokenManager struct {
	requester TokenRequester

	mu     sync.RWMutex
	token  *Token
	expiry time.Time

	expiryLeeway time.Duration
	logger       Logger // optional logger
}

// ManagerOption is a functional option for configuring TokenManager.
type ManagerOption func(*TokenManager)

// WithLogger sets a custom logger for token refresh events.
// If not set, no logging will occur.
func WithLogger(logger Logger) ManagerOption {
	return func(tm *TokenManager) {
		tm.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
func WithLoggingEnabled() ManagerOption {
	return func(tm *TokenManager) {
		tm.logger = log.Default()
	}
}

// WithExpiryLeeway sets how long before the reported expiry a cached
// token is considered stale. Default is one minute.
func WithExpiryLeeway(leeway time.Duration) ManagerOption {
	return func(tm *TokenManager) {
		tm.expiryLeeway = leeway
	}
}

// NewTokenManager creates a token manager backed by the given
// requester, typically an Acquirer.
func NewTokenManager(requester TokenRequester, opts ...ManagerOption) *TokenManager {
	tm := &TokenManager{
		requester:    requester,
		expiryLeeway: time.Minute, // replace a bit before expiry to avoid near-expiry races
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// AccessToken returns a valid bearer token string, requesting a new one
// if the cached token is missing or about to expire. It uses
// double-checked locking to minimize lock contention.
func (tm *TokenManager) AccessToken(ctx context.Context) (string, error) {
	token, err := tm.Token(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Token returns the full cached token, requesting a new one if needed.
func (tm *TokenManager) Token(ctx context.Context) (*Token, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Fast path: check if we have a valid token without write lock
	tm.mu.RLock()
	if tm.tokenValid() {
		token := tm.token
		tm.mu.RUnlock()
		return token, nil
	}
	tm.mu.RUnlock()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine might have refreshed)
	if tm.tokenValid() {
		return tm.token, nil
	}

	token, err := tm.requester.RequestClientToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to fetch token: %w", err)
	}

	tm.token = token
	tm.expiry = token.ExpiryFrom(time.Now())

	if tm.logger != nil {
		tm.logger.Printf("auth: obtained new access token (expires: %s)", tm.expiry.Format(time.RFC3339))
	}

	return token, nil
}

// tokenValid reports whether the cached token is still usable with a
// small safety window.
func (tm *TokenManager) tokenValid() bool {
	if tm.token == nil || tm.token.AccessToken == "" {
		return false
	}
	if tm.expiry.IsZero() {
		return true
	}
	return time.Until(tm.expiry) > tm.expiryLeeway
}

// TokenSource adapts the manager to oauth2.TokenSource so it can be
// used with oauth2.Transport and other golang.org/x/oauth2 consumers.
// The given context is used for all token requests the source makes.
func (tm *TokenManager) TokenSource(ctx context.Context) oauth2.TokenSource {
	if ctx == nil {
		ctx = context.Background()
	}
	return &managerTokenSource{ctx: ctx, tm: tm}
}

type managerTokenSource struct {
	ctx context.Context
	tm  *TokenManager
}

// Compile-time check that managerTokenSource implements oauth2.TokenSource.
var _ oauth2.TokenSource = (*managerTokenSource)(nil)

func (s *managerTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.tm.Token(s.ctx)
	if err != nil {
		return nil, err
	}
	return token.OAuth2(), nil
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that
// forwards the myTarget bearer token as "authorization: Bearer <token>"
// in outgoing request metadata, for callers that hand tokens to
// internal services over gRPC. If the token fetch fails, the RPC is
// aborted with an error.
func (tm *TokenManager) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		token, err := tm.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("auth: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor
// that forwards the myTarget bearer token in outgoing request metadata.
// If the token fetch fails, stream creation is aborted with an error.
func (tm *TokenManager) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		token, err := tm.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("auth: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return streamer(ctx, desc, cc, method, opts...)
	}
}
