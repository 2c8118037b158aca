package api

import (
	"context"
	"net/http"
	"time"

	"github.com/d6e/cratedocs/api/cache"
	"github.com/d6e/cratedocs/log"
	"github.com/morikuni/failure/v2"
)

// userAgent identifies this tool to crates.io and docs.rs, which both
// require a descriptive User-Agent from automated clients.
const userAgent = "CrateDocs/0.2.0 (https://github.com/d6e/cratedocs)"

const (
	defaultCratesBaseURL = "https://crates.io"
	defaultDocsRSBaseURL = "https://docs.rs"
)

// Client fetches crate documentation from crates.io and docs.rs
type Client struct {
	http    *http.Client
	crates  string // crates.io base URL
	docsrs  string // docs.rs base URL
	noCache bool

	// Caches are shared across calls so that concurrent misses for the
	// same key collapse into a single fetch.
	docCache    *cache.Cache[string]
	itemCache   *cache.Cache[string]
	searchCache *cache.Cache[SearchResults]
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCratesBaseURL overrides the crates.io endpoint
func WithCratesBaseURL(u string) Option {
	return func(c *Client) { c.crates = u }
}

// WithDocsRSBaseURL overrides the docs.rs endpoint
func WithDocsRSBaseURL(u string) Option {
	return func(c *Client) { c.docsrs = u }
}

// WithoutCache disables the on-disk cache for all lookups
func WithoutCache() Option {
	return func(c *Client) { c.noCache = true }
}

// NewClient creates a documentation client
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Transport: log.Transport(),
			Timeout:   30 * time.Second,
		},
		crates: defaultCratesBaseURL,
		docsrs: defaultDocsRSBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.docCache = cache.New[string]("docs")
	c.itemCache = cache.New[string]("items")
	c.searchCache = cache.New[SearchResults]("search")
	return c
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	return resp, nil
}
