// Package factcheck is a thin client for the Google Fact Check Tools
// claims:search endpoint.
package factcheck

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://factchecktools.googleapis.com/v1alpha1"

// Client performs fact-check claim searches.
type Client interface {
	Search(ctx context.Context, query string, pageSize int) (*SearchResponse, error)
}

// SearchResponse is the response from GET /claims:search.
type SearchResponse struct {
	Claims []Claim `json:"claims"`
}

// Claim is a single checked claim with its published reviews.
type Claim struct {
	Text        string        `json:"text"`
	Claimant    string        `json:"claimant,omitempty"`
	ClaimReview []ClaimReview `json:"claimReview"`
}

// ClaimReview is one publisher's review of a claim.
type ClaimReview struct {
	Publisher     Publisher `json:"publisher"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	TextualRating string    `json:"textualRating"`
}

// Publisher identifies the outlet that published a review.
type Publisher struct {
	Name string `json:"name"`
	Site string `json:"site,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the default request timeout. Non-positive values
// are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Fact Check Tools API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, pageSize int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	params.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/claims:search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "factcheck: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "factcheck: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "factcheck: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("factcheck: status %d: %s", resp.StatusCode, string(body))
	}

	var out SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "factcheck: decode response")
	}

	return &out, nil
}
