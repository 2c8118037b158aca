package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/d6e/cratedocs/api/cache"
	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

// readTestFile reads a test file from the testdata directory
func readTestFile(t *testing.T, filename string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read test file %s: %v", filename, err)
	}
	return string(content)
}

// routeTransport serves canned responses by URL path; unknown paths get 404
type routeTransport struct {
	t           *testing.T
	routes      map[string]string
	seen        []string
	seenQueries []url.Values
}

func (m *routeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.seen = append(m.seen, req.URL.Path)
	m.seenQueries = append(m.seenQueries, req.URL.Query())

	if req.Header.Get("User-Agent") == "" {
		m.t.Errorf("request to %s has no User-Agent", req.URL)
	}

	body, ok := m.routes[req.URL.Path]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("Not Found")),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

// testClient builds a Client with a route-based mock transport and the
// cache redirected into the test's temp dir.
func testClient(t *testing.T, routes map[string]string) (*Client, *routeTransport) {
	t.Helper()

	origDir := cache.DefaultDir
	cache.DefaultDir = t.TempDir()
	t.Cleanup(func() { cache.DefaultDir = origDir })

	rt := &routeTransport{t: t, routes: routes}
	c := NewClient(
		WithHTTPClient(&http.Client{Transport: rt}),
		WithCratesBaseURL("https://crates.example"),
		WithDocsRSBaseURL("https://docs.example"),
	)
	return c, rt
}

func TestGetCrate(t *testing.T) {
	c, _ := testClient(t, map[string]string{
		"/api/v1/crates/serde": readTestFile(t, "crate_serde.json"),
	})

	tests := []struct {
		name        string
		crate       string
		version     string
		wantVersion string
		wantErrCode ErrorCode
	}{
		{
			name:        "default version",
			crate:       "serde",
			wantVersion: "1.0.219",
		},
		{
			name:        "explicit version",
			crate:       "serde",
			version:     "1.0.100",
			wantVersion: "1.0.100",
		},
		{
			name:        "unknown version",
			crate:       "serde",
			version:     "9.9.9",
			wantErrCode: ErrCrateNotFound,
		},
		{
			name:        "unknown crate",
			crate:       "no-such-crate",
			wantErrCode: ErrCrateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := c.GetCrate(context.Background(), tt.crate, tt.version)
			if tt.wantErrCode != "" {
				if !failure.Is(err, tt.wantErrCode) {
					t.Fatalf("GetCrate() error = %v, want code %v", err, tt.wantErrCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetCrate() error = %v", err)
			}
			if info.Version.Num != tt.wantVersion {
				t.Errorf("GetCrate() version = %s, want %s", info.Version.Num, tt.wantVersion)
			}
			if info.Crate.Name != "serde" {
				t.Errorf("GetCrate() name = %s, want serde", info.Crate.Name)
			}
		})
	}
}

func TestCrateDoc(t *testing.T) {
	c, rt := testClient(t, map[string]string{
		"/api/v1/crates/serde":                readTestFile(t, "crate_serde.json"),
		"/api/v1/crates/serde/1.0.219/readme": readTestFile(t, "readme_serde.html"),
	})

	doc, err := c.CrateDoc(context.Background(), "serde", "")
	if err != nil {
		t.Fatalf("CrateDoc() error = %v", err)
	}

	for _, want := range []string{
		"# serde v1.0.219",
		"A generic serialization/deserialization framework",
		"**License:** MIT OR Apache-2.0",
		"**Repository:** https://github.com/serde-rs/serde",
		"Serde is a framework for",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("CrateDoc() missing %q in:\n%s", want, doc)
		}
	}

	if strings.Contains(doc, "<h1>") {
		t.Errorf("CrateDoc() contains raw HTML:\n%s", doc)
	}

	// A second lookup must come from the on-disk cache
	fetches := len(rt.seen)
	if _, err := c.CrateDoc(context.Background(), "serde", ""); err != nil {
		t.Fatalf("CrateDoc() second call error = %v", err)
	}
	if len(rt.seen) != fetches {
		t.Errorf("CrateDoc() second call fetched %d more times, want cached", len(rt.seen)-fetches)
	}
}

// slowTransport counts requests per path and delays each response so that
// concurrent cache misses overlap.
type slowTransport struct {
	mu     sync.Mutex
	routes map[string]string
	counts map[string]int
	delay  time.Duration
}

func (m *slowTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[req.URL.Path]++
	m.mu.Unlock()

	time.Sleep(m.delay)

	body, ok := m.routes[req.URL.Path]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("Not Found")),
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func (m *slowTransport) count(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[path]
}

func TestCrateDocConcurrentMissesShareFetch(t *testing.T) {
	origDir := cache.DefaultDir
	cache.DefaultDir = t.TempDir()
	t.Cleanup(func() { cache.DefaultDir = origDir })

	st := &slowTransport{
		routes: map[string]string{
			"/api/v1/crates/serde":                readTestFile(t, "crate_serde.json"),
			"/api/v1/crates/serde/1.0.219/readme": readTestFile(t, "readme_serde.html"),
		},
		delay: 50 * time.Millisecond,
	}
	c := NewClient(
		WithHTTPClient(&http.Client{Transport: st}),
		WithCratesBaseURL("https://crates.example"),
	)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.CrateDoc(context.Background(), "serde", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("CrateDoc() error = %v", err)
		}
	}

	if got := st.count("/api/v1/crates/serde"); got != 1 {
		t.Errorf("concurrent misses fetched crate metadata %d times, want 1", got)
	}
	if got := st.count("/api/v1/crates/serde/1.0.219/readme"); got != 1 {
		t.Errorf("concurrent misses fetched the README %d times, want 1", got)
	}
}

func TestFormatCrateDocWithoutOptionalFields(t *testing.T) {
	info := CrateInfo{
		Crate:   Crate{Name: "tiny", DefaultVersion: "0.1.0"},
		Version: CrateVersion{Num: "0.1.0"},
	}

	got := formatCrateDoc(info, "body")
	want := "# tiny v0.1.0\n\nbody"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("formatCrateDoc() mismatch (-want +got):\n%s", diff)
	}
}
