package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CredentialProvider supplies the bearer token attached to every request.
// It is injected rather than read from a package-level store so tests and
// multi-session tooling can carry independent credentials.
type CredentialProvider interface {
	Token() (string, error)
}

// StaticToken is a fixed-token provider.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Client talks to the dashboard backend. The zero HTTPClient falls back to
// http.DefaultClient; no request timeout is configured beyond the transport's
// own defaults.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Creds      CredentialProvider

	cache tagCache
}

func New(baseURL string, creds CredentialProvider) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Creds: creds}
}

// ImageURL resolves a server-side image filename to a display URL. The
// backend serves uploads from the host root, so the /api/v1 suffix is
// stripped from the base URL first.
func (c *Client) ImageURL(name string) string {
	if name == "" {
		return ""
	}
	base := strings.TrimSuffix(c.BaseURL, "/api/v1")
	return base + "/" + strings.TrimLeft(name, "/")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Creds != nil {
		token, err := c.Creds.Token()
		if err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do executes the request and returns the response body. Non-2xx responses
// are decoded into *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, nil, body, "application/json")
	if err != nil {
		return nil, err
	}
	return c.do(req)
}
