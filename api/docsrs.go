package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/d6e/cratedocs/log"
	"github.com/morikuni/failure/v2"
)

// itemKinds are the docs.rs page kinds probed for an item, in order.
// docs.rs encodes the kind in the file name (struct.Vec.html etc.) and the
// kind cannot be derived from the item path alone.
var itemKinds = []string{"struct", "enum", "trait", "fn", "macro"}

// LookupItem fetches the docs.rs documentation page for a specific item in
// a crate and returns it as markdown. An empty version resolves to
// "latest". The result is cached under "crate[:version]:item".
func (c *Client) LookupItem(ctx context.Context, crateName, itemPath, version string) (string, error) {
	loc, err := parseItemPath(crateName, itemPath)
	if err != nil {
		return "", err
	}

	key := crateName
	if version != "" {
		key += ":" + version
	}
	key += ":" + itemPath

	return c.itemCache.GetOrSet(key, func() (string, error) {
		return c.fetchItem(ctx, crateName, loc, version)
	}, c.noCache)
}

func (c *Client) fetchItem(ctx context.Context, crateName string, loc itemLocation, version string) (string, error) {
	if version == "" {
		version = "latest"
	}

	var lastErr string
	for _, kind := range itemKinds {
		pageURL, err := url.Parse(c.itemURL(crateName, loc, version, kind))
		if err != nil {
			return "", failure.Wrap(err)
		}

		resp, err := c.get(ctx, pageURL.String())
		if err != nil {
			lastErr = err.Error()
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Sprintf("status code: %d", resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", failure.Wrap(err)
		}

		log.Debug("item page found", "crate", crateName, "kind", kind, "url", pageURL.String())

		return htmlToMarkdown(pageURL, string(body))
	}

	return "", failure.New(ErrItemNotFound,
		failure.Message("No matching item found on docs.rs"),
		failure.Context{
			"crate":      crateName,
			"item":       loc.ItemName,
			"last_error": lastErr,
		},
	)
}

// itemURL builds the docs.rs page URL for an item of the given kind.
// Layout: /<crate>/<version>/<crate_ident>/[module/path/]<kind>.<Item>.html
func (c *Client) itemURL(crateName string, loc itemLocation, version, kind string) string {
	parts := []string{c.docsrs, crateName, version, crateIdent(crateName)}
	if loc.ModulePath != "" {
		parts = append(parts, loc.ModulePath)
	}
	parts = append(parts, fmt.Sprintf("%s.%s.html", kind, loc.ItemName))
	return strings.Join(parts, "/")
}
