package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/outline"
	"golang.org/x/net/html"
)

// HTMLReader ingests HTML reports. The whole body becomes a single page of
// plain text; h1–h6 elements double as an embedded outline.
type HTMLReader struct{}

func (p *HTMLReader) Read(r io.Reader, filename string) (Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	doc := Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
	}
	if t := findTitle(root); t != "" {
		doc.Title = t
	}

	var body strings.Builder
	appendBlock := func(t string) {
		if t == "" {
			return
		}
		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString(t)
		body.WriteString("\n")
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				title := textContent(n)
				if title != "" {
					doc.Bookmarks = append(doc.Bookmarks, outline.Entry{
						Level: level,
						Title: title,
						Page:  1,
					})
					appendBlock(title)
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				appendBlock(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if b := findBody(root); b != nil {
		walk(b)
	} else {
		walk(root)
	}

	doc.Pages = []string{strings.TrimSpace(body.String())}
	return doc, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
