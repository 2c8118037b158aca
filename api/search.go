package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/morikuni/failure/v2"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// SearchResult represents a single crate returned by a crates.io search
type SearchResult struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	MaxVersion    string `json:"max_version"`
	Downloads     int64  `json:"downloads"`
	Documentation string `json:"documentation,omitempty"`
	Repository    string `json:"repository,omitempty"`
	ExactMatch    bool   `json:"exact_match"`
}

// SearchResults holds search hits plus the registry's total match count
type SearchResults struct {
	Crates []SearchResult `json:"crates"`
	Total  int            `json:"total"`
}

// SearchCrates searches crates.io. limit defaults to 10 and is capped at
// 100, matching the registry's per_page bounds.
func (c *Client) SearchCrates(ctx context.Context, query string, limit int) (SearchResults, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	key := fmt.Sprintf("%s:%d", query, limit)

	return c.searchCache.GetOrSet(key, func() (SearchResults, error) {
		q := url.Values{}
		q.Set("q", query)
		q.Set("per_page", strconv.Itoa(limit))

		u := fmt.Sprintf("%s/api/v1/crates?%s", c.crates, q.Encode())
		resp, err := c.get(ctx, u)
		if err != nil {
			return SearchResults{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return SearchResults{}, failure.New(ErrRegistryUnavailable,
				failure.Message("Failed to search crates.io"),
				failure.Context{"query": query, "status": resp.Status},
			)
		}

		var response struct {
			Crates []SearchResult `json:"crates"`
			Meta   struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return SearchResults{}, failure.Wrap(err)
		}

		return SearchResults{
			Crates: response.Crates,
			Total:  response.Meta.Total,
		}, nil
	}, c.noCache)
}
