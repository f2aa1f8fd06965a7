package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/shizacat/go-target-api/auth"
	"github.com/shizacat/go-target-api/httpclient"
	"github.com/shizacat/go-target-api/internal/testutil"
)

// staticTokens satisfies httpclient.TokenProvider without a network.
type staticTokens struct{ token string }

func (s *staticTokens) AccessToken(ctx context.Context) (string, error) {
	return s.token, nil
}

// recorder captures the last request and plays back a canned response.
type recorder struct {
	req    *http.Request
	body   string
	status int
	resp   string
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	r.req = req
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		r.body = string(raw)
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	resp := r.resp
	if resp == "" {
		resp = "{}"
	}
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(resp)),
		Request:    req,
	}, nil
}

func newTestClient(t *testing.T, rec *recorder, opts ...ClientOption) *Client {
	t.Helper()

	hc := &http.Client{
		Transport: httpclient.NewBearerTransport(&staticTokens{token: "tok123"}, rec),
	}
	opts = append([]ClientOption{WithHTTPClient(hc)}, opts...)
	return NewClient(nil, opts...)
}

func TestClient_Get(t *testing.T) {
	rec := &recorder{resp: `{"items":[{"id":42}]}`}
	client := newTestClient(t, rec)

	var out struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
	}
	if err := client.Get(context.Background(), "campaigns.json", nil, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if len(out.Items) != 1 || out.Items[0].ID != 42 {
		t.Errorf("unexpected response: %+v", out)
	}
	if got := rec.req.URL.String(); got != "https://target.my.com/api/v1/campaigns.json" {
		t.Errorf("unexpected URL: %s", got)
	}
	if got := rec.req.Header.Get("Authorization"); got != "Bearer tok123" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestClient_Get_SandboxAndVersionedResource(t *testing.T) {
	rec := &recorder{}
	client := newTestClient(t, rec, WithSandbox())

	if err := client.Get(context.Background(), "/v2/banners.json", url.Values{"limit": {"5"}}, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got := rec.req.URL.String(); got != "https://target-sandbox.my.com/api/v2/banners.json?limit=5" {
		t.Errorf("unexpected URL: %s", got)
	}
}

func TestClient_Post(t *testing.T) {
	rec := &recorder{resp: `{"id":7}`}
	client := newTestClient(t, rec)

	body := map[string]string{"name": "spring campaign"}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := client.Post(context.Background(), "campaigns.json", body, &out); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if rec.req.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", rec.req.Method)
	}
	if got := rec.req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("unexpected content type: %s", got)
	}
	if rec.body != `{"name":"spring campaign"}` {
		t.Errorf("unexpected body: %s", rec.body)
	}
	if out.ID != 7 {
		t.Errorf("unexpected response: %+v", out)
	}
}

func TestClient_Delete_NoContent(t *testing.T) {
	rec := &recorder{status: http.StatusNoContent}
	client := newTestClient(t, rec)

	if err := client.Delete(context.Background(), "v2/campaigns/7.json"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if rec.req.Method != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", rec.req.Method)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		resp   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "400 maps to ValidationError",
			status: http.StatusBadRequest,
			resp:   `{"name":"This field is required."}`,
			check: func(t *testing.T, err error) {
				var valErr *auth.ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T: %v", err, err)
				}
			},
		},
		{
			name:   "401 maps to AuthError",
			status: http.StatusUnauthorized,
			resp:   `{"error":"invalid_token"}`,
			check: func(t *testing.T, err error) {
				var authErr *auth.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("expected AuthError, got %T: %v", err, err)
				}
			},
		},
		{
			name:   "500 maps to APIError",
			status: http.StatusInternalServerError,
			resp:   `internal error`,
			check: func(t *testing.T, err error) {
				var apiErr *auth.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %T: %v", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: tt.status, resp: tt.resp}
			client := newTestClient(t, rec)

			err := client.Get(context.Background(), "campaigns.json", nil, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			tt.check(t, err)
		})
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	rec := &recorder{resp: `<html>gateway</html>`}
	client := newTestClient(t, rec)

	var out map[string]any
	err := client.Get(context.Background(), "campaigns.json", nil, &out)

	var malErr *auth.MalformedResponseError
	if !errors.As(err, &malErr) {
		t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	hc := &http.Client{
		Transport: testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
	}
	client := NewClient(nil, WithHTTPClient(hc))

	err := client.Get(context.Background(), "campaigns.json", nil, nil)

	var netErr *auth.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}
