package api

import (
	"strings"
	"testing"
)

func TestHTMLToMarkdown(t *testing.T) {
	body := `<!DOCTYPE html>
<html>
<head><title>Example Page</title></head>
<body>
<main>
<h1>Heading</h1>
<p>Some <strong>bold</strong> text and a <a href="https://example.com">link</a>.</p>
</main>
</body>
</html>`

	got, err := htmlToMarkdown(nil, body)
	if err != nil {
		t.Fatalf("htmlToMarkdown() error = %v", err)
	}

	if !strings.Contains(got, "bold") {
		t.Errorf("htmlToMarkdown() lost body text:\n%s", got)
	}
	if strings.Contains(got, "<p>") || strings.Contains(got, "<html>") {
		t.Errorf("htmlToMarkdown() contains raw HTML:\n%s", got)
	}
}

func TestHTMLToMarkdownTitleFallback(t *testing.T) {
	// No headings in the body: the <title> becomes the document heading
	body := `<html>
<head><title>Mutex in tokio::sync - Rust</title></head>
<body><p>An asynchronous mutex.</p></body>
</html>`

	got, err := htmlToMarkdown(nil, body)
	if err != nil {
		t.Fatalf("htmlToMarkdown() error = %v", err)
	}

	if !strings.HasPrefix(got, "#") {
		t.Errorf("htmlToMarkdown() output has no heading:\n%s", got)
	}
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "simple title",
			body: "<html><head><title>Hello</title></head><body></body></html>",
			want: "Hello",
		},
		{
			name: "whitespace trimmed",
			body: "<html><head><title>\n  Hello  \n</title></head><body></body></html>",
			want: "Hello",
		},
		{
			name: "no title",
			body: "<html><body><p>x</p></body></html>",
			want: "",
		},
		{
			name: "not html",
			body: "just some text",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageTitle(tt.body); got != tt.want {
				t.Errorf("pageTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
