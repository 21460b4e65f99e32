package oilfox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codeking/oilfox-hub/components/http/htclient"
	"github.com/codeking/oilfox-hub/components/status"
)

const (
	// DefaultBaseURL is the production vendor API endpoint.
	DefaultBaseURL = "https://api.oilfox.io"

	// DefaultTimeout bounds every single API call.
	DefaultTimeout = time.Second * 10

	// Fixed client identifier expected by the vendor API.
	userAgent = "okhttp/3.2.0"
)

// Client executes requests against the versioned vendor API.
type Client struct {
	ctx     context.Context
	client  *htclient.Client
	baseURL string
	gen     SchemaGeneration
	timeout time.Duration
}

// ClientParams contains vendor API client configuration.
type ClientParams struct {
	// BaseURL - vendor API base URL, DefaultBaseURL if empty.
	BaseURL string

	// Generation selects the API version prefix.
	Generation SchemaGeneration

	// Timeout - how long to wait for an API response, DefaultTimeout if zero.
	Timeout time.Duration
}

// NewClient is a Client initialization.
//
// Parameters:
//   - ctx - parent context, bounds all requests.
//   - client to perform the actual HTTP requests.
//   - params - vendor API configuration.
func NewClient(ctx context.Context, client *htclient.Client, params ClientParams) *Client {
	if params.BaseURL == "" {
		params.BaseURL = DefaultBaseURL
	}
	if params.Timeout == 0 {
		params.Timeout = DefaultTimeout
	}

	return &Client{
		ctx:     ctx,
		client:  client,
		baseURL: params.BaseURL,
		gen:     params.Generation,
		timeout: params.Timeout,
	}
}

// Get fetches a versioned API path using the bearer token.
//
// Remarks:
//   - No retry: a failed call fails the current cycle, the next scheduled
//     cycle is the retry.
func (c *Client) Get(path string, token string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	c.setCommonHeaders(req)

	resp, body, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oilfox-client: failed to fetch: path=%s err=%v: %w",
			path, err, status.StatusConnectivityError)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oilfox-client: unexpected response: path=%s code=%d: %w",
			path, resp.StatusCode, status.StatusConnectivityError)
	}

	return body, nil
}

// PostJSON posts a JSON payload to a versioned API path.
//
// Remarks:
//   - The HTTP status code is returned to the caller: for the login endpoint
//     a non-2xx response means rejected credentials, not a transport failure.
func (c *Client) PostJSON(path string, payload any) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(buf))
	if err != nil {
		return 0, nil, err
	}

	c.setCommonHeaders(req)

	resp, body, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("oilfox-client: failed to post: path=%s err=%v: %w",
			path, err, status.StatusConnectivityError)
	}

	return resp.StatusCode, body, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + c.gen.APIVersion() + "/" + path
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Connection", "Keep-Alive")
	req.Header.Set("User-Agent", userAgent)
}
