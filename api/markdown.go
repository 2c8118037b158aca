package api

import (
	"net/url"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mackee/go-readability"
	"golang.org/x/net/html"
)

// htmlToMarkdown converts an HTML document to markdown. Readability
// extraction is tried first to strip navigation and sidebars; plain
// conversion is the fallback for pages it cannot segment.
func htmlToMarkdown(u *url.URL, body string) (string, error) {
	md, err := convert(u, body)
	if err != nil {
		return "", err
	}

	md = strings.TrimSpace(md)

	// docs.rs pages carry the item signature in <title>; keep it as a
	// heading when extraction dropped every heading
	if !strings.HasPrefix(md, "#") {
		if title := pageTitle(body); title != "" {
			md = "# " + title + "\n\n" + md
		}
	}

	return md, nil
}

func convert(u *url.URL, body string) (string, error) {
	article, err := readability.Extract(body, readability.DefaultOptions())
	if err == nil && article.Root != nil {
		return readability.ToMarkdown(article.Root), nil
	}

	var host string
	if u != nil {
		host = u.Host
	}
	converter := html2md.NewConverter(host, true, &html2md.Options{})
	return converter.ConvertString(body)
}

// pageTitle returns the content of the document's <title> element, or ""
func pageTitle(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title
}
