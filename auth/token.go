package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// Token is the myTarget OAuth2 server's response to a token request.
// RefreshToken and Scope are only present for grants that issue them.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ExpiryFrom returns the absolute expiry time for a token issued at the
// given moment. Tokens without an expires_in hint never expire.
func (t *Token) ExpiryFrom(issued time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return issued.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// OAuth2 converts the token to an *oauth2.Token so it can be used with
// golang.org/x/oauth2 transports and token sources. The expiry is
// computed relative to time.Now.
func (t *Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiryFrom(time.Now()),
	}
}
