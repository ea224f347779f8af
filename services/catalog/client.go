// Package catalog talks to the TMDB-style metadata provider and normalizes
// its responses into renderable catalog items.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelfeed/models"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

var (
	ErrAPIKeyRequired = errors.New("catalog api key not configured")
	// ErrUpstream marks a non-success response from the provider. Callers
	// log it and keep rendering whatever categories did load.
	ErrUpstream = errors.New("catalog request failed")
)

// Client issues read-only requests against the provider and deduplicates
// repeated requests through a URL-keyed response cache. Two concurrent
// fetches of the same URL before the first completes will both hit the
// network; only repeated requests are collapsed.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	cache   *ResponseCache
}

// NewClient wires a client against baseURL. A nil httpc gets a 15s-timeout
// default; a nil cache gets a fresh one.
func NewClient(baseURL, apiKey string, httpc *http.Client, cache *ResponseCache) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if cache == nil {
		cache = NewResponseCache()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpc:   httpc,
		cache:   cache,
	}
}

func (c *Client) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// Fetch returns the provider's result list for an endpoint such as
// "/trending/all/week" or "/discover/movie?with_genres=28". A cached URL is
// answered without a network call, and the answer is always equal to the
// first response seen for that URL.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]models.RawItem, error) {
	if !c.isConfigured() {
		return nil, ErrAPIKeyRequired
	}

	requestURL := c.buildURL(endpoint)
	if items, ok := c.cache.get(requestURL); ok {
		return items, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s: %s", ErrUpstream, endpoint, resp.Status)
	}

	var payload struct {
		Results []models.RawItem `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}

	items := payload.Results
	if items == nil {
		items = []models.RawItem{}
	}

	c.cache.set(requestURL, items)
	return items, nil
}

// buildURL appends the credential with "&" when the endpoint already carries
// a query string, "?" otherwise, matching the provider's expectations.
func (c *Client) buildURL(endpoint string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return c.baseURL + endpoint + sep + "api_key=" + url.QueryEscape(c.apiKey)
}
