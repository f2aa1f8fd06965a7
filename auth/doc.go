// Package auth obtains OAuth2 bearer tokens from the myTarget
// advertising API using the client-credentials flow.
//
// The Acquirer is a stateless exchange: one HTTP POST per call, no
// caching, no retries. TokenManager layers caching with early refresh
// on top of it and offers gRPC client interceptors plus an
// oauth2.TokenSource adapter.
//
// # Features
//
//   - Client-credentials token exchange against production or sandbox
//   - Agency client, refresh-token, and authorization-code grants
//   - Token invalidation and user authorization URL building
//   - Typed errors: NetworkError, AuthError, ValidationError,
//     APIError, MalformedResponseError
//   - Caching TokenManager with expiry leeway and optional logging
//
// # Quick Start
//
//	creds := auth.Credentials{ClientID: "id", ClientSecret: "secret"}
//	acquirer, err := auth.New(creds, auth.WithSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := acquirer.RequestClientToken(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(token.AccessToken)
//
// For repeated API calls, wrap the acquirer in a TokenManager:
//
//	tm := auth.NewTokenManager(acquirer, auth.WithLoggingEnabled())
//	token, err := tm.AccessToken(ctx)
//
// # Notes
//
//   - The Acquirer is safe for concurrent use because it holds no
//     mutable state; TokenManager uses double-checked locking.
//   - Credentials can be loaded from the environment with
//     CredentialsFromEnv (TARGET_API_CLIENT_ID, TARGET_API_CLIENT_SECRET).
package auth
