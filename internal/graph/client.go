package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/graphctl/internal/config"
)

// defaultBaseURL is the Microsoft Graph API base URL.
const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client is an authenticated Microsoft Graph directory client.
// It holds exactly one bearer token, acquired during New; the token is
// immutable for the client's lifetime, so a Client is safe for concurrent
// reads.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL    string
	tokenURL   string
	httpClient *http.Client
}

// WithBaseURL overrides the Graph API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTokenURL overrides the token endpoint. The default is derived from
// the tenant ID in the credentials.
func WithTokenURL(tokenURL string) Option {
	return func(o *options) {
		o.tokenURL = tokenURL
	}
}

// WithHTTPClient overrides the HTTP client used for token acquisition and
// API requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// New validates the credentials, acquires a token via the client-credentials
// grant, and returns a ready client. Construction fails before any network
// call when a credentials field is missing, and with *AuthError when the
// identity provider rejects the credentials or returns no access token.
func New(ctx context.Context, creds *config.Credentials, opts ...Option) (*Client, error) {
	o := &options{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := creds.Validate(); err != nil {
		return nil, err
	}

	token, err := acquireToken(ctx, creds, o.tokenURL, o.httpClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    o.baseURL,
		token:      token,
		httpClient: o.httpClient,
	}, nil
}

// Do issues an authenticated request against the directory API.
// The endpoint is joined to the base URL as-is; body, when non-nil, is
// marshalled as JSON. A response with status >= 400 returns *APIError.
// An empty response body (e.g. deletions) returns a nil message.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Correlation ID for Microsoft support and request tracing.
	req.Header.Set("client-request-id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if len(respBody) == 0 {
		return nil, nil
	}
	return json.RawMessage(respBody), nil
}
