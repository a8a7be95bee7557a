// Package htmlconv turns fetched HTML into text a model can read.
package htmlconv

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	tagPattern = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9]*)\b[^>]*>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// tagThreshold is how many tags make a body count as HTML on their own.
const tagThreshold = 3

// noise elements are dropped before conversion.
var noise = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"nav": true, "footer": true, "header": true, "aside": true, "svg": true,
}

// IsHTML reports whether s looks like an HTML document or fragment.
func IsHTML(s string) bool {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return true
	}
	tags := len(tagPattern.FindAllStringIndex(s, tagThreshold))
	if tags >= tagThreshold {
		return true
	}
	if tags < 2 {
		return false
	}
	for _, marker := range []string{"<body", "<div", "<table", "<ul>", "<ol>", "<h1", "<h2"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ToMarkdown converts an HTML document to Markdown, keeping only the main
// content region and dropping scripts, navigation and similar chrome.
func ToMarkdown(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	root := mainContent(doc)
	strip(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	md, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(md, "\n\n")), nil
}

// ConvertIfHTML returns the Markdown form of s when s is HTML and conversion
// succeeds, otherwise s unchanged. The bool reports whether it converted.
func ConvertIfHTML(s string) (string, bool) {
	if !IsHTML(s) {
		return s, false
	}
	md, err := ToMarkdown(s)
	if err != nil {
		return s, false
	}
	return md, true
}

// Title returns the trimmed text of the document's <title>, or "".
func Title(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// mainContent prefers <main>, then <article>, then <body>.
func mainContent(doc *html.Node) *html.Node {
	found := map[string]*html.Node{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch tag := strings.ToLower(n.Data); tag {
			case "main", "article", "body":
				if found[tag] == nil {
					found[tag] = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	for _, tag := range []string{"main", "article", "body"} {
		if n := found[tag]; n != nil {
			return n
		}
	}
	return doc
}

func strip(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode || (c.Type == html.ElementNode && noise[strings.ToLower(c.Data)]) {
			n.RemoveChild(c)
		} else {
			strip(c)
		}
		c = next
	}
}
