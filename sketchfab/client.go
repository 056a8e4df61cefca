// Package sketchfab implements a client for the Sketchfab v3 search API.
//
// The package covers three concerns: building normalized query parameters
// from a filter set (SearchParams), issuing the search request (Client), and
// extracting pagination cursors from the response envelope (PaginationInfo).
package sketchfab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Amon20044/SketchFab-Apify-Actor/logger"
	pkgerrors "github.com/Amon20044/SketchFab-Apify-Actor/pkg/errors"
	"github.com/Amon20044/SketchFab-Apify-Actor/pkg/httputil"
)

const (
	// DefaultBaseURL is the production Sketchfab API base URL.
	DefaultBaseURL = "https://api.sketchfab.com/v3"

	searchPath = "/search"

	// searchType pins every search to model results. The actor only ever
	// searches models, never collections or users.
	searchType = "models"
)

// Client issues search requests against the Sketchfab API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL. Used in tests and for proxies.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIToken sets the Sketchfab API token sent as an Authorization header.
// Search works unauthenticated; a token lifts per-IP rate limits.
func WithAPIToken(token string) ClientOption {
	return func(c *Client) {
		c.apiToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRateLimit installs a client-side limiter of rps requests per second
// with the given burst. Zero or negative rps disables limiting.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient creates a Sketchfab search client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httputil.NewHTTPClient(httputil.DefaultSearchTimeout),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search issues one GET against the search endpoint and returns the decoded
// envelope. The params are sent exactly as given, normalized by Query (empty
// values stripped); results are returned as raw JSON for unchanged
// pass-through to the dataset.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, pkgerrors.New(pkgerrors.ComponentSketchfab, "Search", err)
		}
	}

	q := params.Query()
	q.Set("type", searchType)
	reqURL := c.baseURL + searchPath + "?" + q.Encode()

	logger.APIRequest("Sketchfab", http.MethodGet, reqURL, nil, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentSketchfab, "Search",
			fmt.Errorf("failed to create request: %w", err))
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.APIResponse("Sketchfab", 0, "", err)
		return nil, pkgerrors.New(pkgerrors.ComponentSketchfab, "Search",
			fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.APIResponse("Sketchfab", resp.StatusCode, "", err)
		return nil, pkgerrors.New(pkgerrors.ComponentSketchfab, "Search",
			fmt.Errorf("failed to read response: %w", err))
	}

	logger.APIResponse("Sketchfab", resp.StatusCode, string(respBody), nil)

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.ComponentSketchfab, "Search",
			fmt.Errorf("search request failed: %s", string(respBody))).
			WithStatusCode(resp.StatusCode)
	}

	var envelope SearchResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentSketchfab, "Search",
			fmt.Errorf("failed to unmarshal response: %w", err))
	}

	return &envelope, nil
}
