package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shizacat/go-target-api/internal/testutil"
)

// staticTokens always returns the same access token.
type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) AccessToken(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func okResponse(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("{}")),
		Request:    req,
	}, nil
}

func TestBearerTransport_InjectsToken(t *testing.T) {
	var captured *http.Request
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return okResponse(req)
	})

	transport := NewBearerTransport(&staticTokens{token: "tok123"}, base)
	client := &http.Client{Transport: transport}

	resp, err := client.Get("https://target.my.com/api/v1/campaigns.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if captured == nil {
		t.Fatal("base transport was not reached")
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer tok123" {
		t.Errorf("expected 'Bearer tok123', got %q", got)
	}
}

func TestBearerTransport_DoesNotMutateOriginal(t *testing.T) {
	base := testutil.RoundTripFunc(okResponse)
	transport := NewBearerTransport(&staticTokens{token: "tok123"}, base)

	req, err := http.NewRequest(http.MethodGet, "https://target.my.com/api/v1/campaigns.json", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	resp.Body.Close()

	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("original request must stay untouched, got Authorization=%q", got)
	}
}

func TestBearerTransport_TokenError(t *testing.T) {
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Error("base transport must not be reached on token failure")
		return okResponse(req)
	})

	transport := NewBearerTransport(&staticTokens{err: errors.New("credentials rejected")}, base)

	req, err := http.NewRequest(http.MethodGet, "https://target.my.com/api/v1/campaigns.json", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	_, err = transport.RoundTrip(req)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "credentials rejected") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBearerTransport_NilProvider(t *testing.T) {
	transport := &BearerTransport{}

	req, err := http.NewRequest(http.MethodGet, "https://target.my.com/api/v1/campaigns.json", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	if _, err := transport.RoundTrip(req); err == nil {
		t.Fatal("expected error for nil token provider, got nil")
	}
}

func TestNewBearerTransport_DefaultBase(t *testing.T) {
	transport := NewBearerTransport(&staticTokens{token: "tok"}, nil)
	if transport.Base != http.DefaultTransport {
		t.Error("expected default transport as base")
	}
}
