package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/morikuni/failure/v2"
)

// Crate represents crates.io package metadata
type Crate struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	DefaultVersion string   `json:"default_version"`
	Homepage       string   `json:"homepage"`
	Repository     string   `json:"repository"`
	Documentation  string   `json:"documentation"`
	Categories     []string `json:"categories"`
	Keywords       []string `json:"keywords"`
}

// CrateVersion represents a single published version of a crate
type CrateVersion struct {
	Num        string `json:"num"`
	ReadmePath string `json:"readme_path"`
	License    string `json:"license"`
	Yanked     bool   `json:"yanked"`
}

// CrateInfo bundles crate metadata with the version a lookup resolved to
type CrateInfo struct {
	Crate   Crate
	Version CrateVersion
}

// GetCrate fetches crate metadata from crates.io. An empty version resolves
// to the crate's default (usually latest stable) version.
func (c *Client) GetCrate(ctx context.Context, name, version string) (CrateInfo, error) {
	u := fmt.Sprintf("%s/api/v1/crates/%s?include=versions,keywords,categories", c.crates, url.PathEscape(name))
	resp, err := c.get(ctx, u)
	if err != nil {
		return CrateInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return CrateInfo{}, failure.New(ErrCrateNotFound,
			failure.Message("Crate not found on crates.io"),
			failure.Context{"crate": name},
		)
	}
	if resp.StatusCode != http.StatusOK {
		return CrateInfo{}, failure.New(ErrRegistryUnavailable,
			failure.Message("Unexpected response from crates.io"),
			failure.Context{"crate": name, "status": resp.Status},
		)
	}

	var response struct {
		Crate    Crate          `json:"crate"`
		Versions []CrateVersion `json:"versions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return CrateInfo{}, failure.Wrap(err)
	}

	want := version
	if want == "" {
		want = response.Crate.DefaultVersion
	}

	for _, v := range response.Versions {
		if v.Num == want {
			return CrateInfo{Crate: response.Crate, Version: v}, nil
		}
	}

	return CrateInfo{}, failure.New(ErrCrateNotFound,
		failure.Message("Version not found on crates.io"),
		failure.Context{"crate": name, "version": want},
	)
}

// crateReadme fetches the crate README rendered by crates.io and converts
// it to markdown.
func (c *Client) crateReadme(ctx context.Context, info CrateInfo) (string, error) {
	if info.Version.ReadmePath == "" {
		return "", failure.New(ErrReadmeNotFound,
			failure.Message("README not found in package"),
			failure.Context{"crate": info.Crate.Name, "version": info.Version.Num},
		)
	}

	readmeURL, err := url.Parse(c.crates + info.Version.ReadmePath)
	if err != nil {
		return "", failure.Wrap(err)
	}

	resp, err := c.get(ctx, readmeURL.String())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", failure.New(ErrReadmeNotFound,
			failure.Message("README not found"),
			failure.Context{"crate": info.Crate.Name, "url": readmeURL.String()},
		)
	}

	htmlContent, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failure.Wrap(err)
	}

	return htmlToMarkdown(readmeURL, string(htmlContent))
}

// CrateDoc returns a formatted markdown document for a crate: title and
// version, description, metadata, links, then the README body. The result
// is cached under "crate" or "crate:version".
func (c *Client) CrateDoc(ctx context.Context, name, version string) (string, error) {
	key := name
	if version != "" {
		key = fmt.Sprintf("%s:%s", name, version)
	}

	return c.docCache.GetOrSet(key, func() (string, error) {
		info, err := c.GetCrate(ctx, name, version)
		if err != nil {
			return "", err
		}

		readme, err := c.crateReadme(ctx, info)
		if err != nil {
			// A crate without a README still has useful metadata
			if failure.Is(err, ErrReadmeNotFound) {
				readme = "_No README published for this version._"
			} else {
				return "", err
			}
		}

		return formatCrateDoc(info, readme), nil
	}, c.noCache)
}

func formatCrateDoc(info CrateInfo, readme string) string {
	var sections []string

	sections = append(sections, fmt.Sprintf("# %s v%s", info.Crate.Name, info.Version.Num))

	if info.Crate.Description != "" {
		sections = append(sections, info.Crate.Description)
	}

	var metadata []string
	if info.Version.License != "" {
		metadata = append(metadata, fmt.Sprintf("**License:** %s", info.Version.License))
	}
	if len(info.Crate.Categories) > 0 {
		metadata = append(metadata, fmt.Sprintf("**Categories:** %s", strings.Join(info.Crate.Categories, ", ")))
	}
	if len(info.Crate.Keywords) > 0 {
		metadata = append(metadata, fmt.Sprintf("**Keywords:** %s", strings.Join(info.Crate.Keywords, ", ")))
	}
	if len(metadata) > 0 {
		sections = append(sections, strings.Join(metadata, " · "))
	}

	var links []string
	if info.Crate.Homepage != "" {
		links = append(links, fmt.Sprintf("**Homepage:** %s", info.Crate.Homepage))
	}
	if info.Crate.Documentation != "" {
		links = append(links, fmt.Sprintf("**Documentation:** %s", info.Crate.Documentation))
	}
	if info.Crate.Repository != "" {
		links = append(links, fmt.Sprintf("**Repository:** %s", info.Crate.Repository))
	}
	if len(links) > 0 {
		sections = append(sections, strings.Join(links, "\n"))
	}

	sections = append(sections, readme)

	return strings.Join(sections, "\n\n")
}

// CrateURL returns the crates.io page for a crate
func (c *Client) CrateURL(name string) string {
	return fmt.Sprintf("%s/crates/%s", c.crates, url.PathEscape(name))
}
