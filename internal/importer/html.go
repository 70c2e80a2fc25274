package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/nota/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLNotes parses an exported notes HTML document and returns the
// notes it contains. Articles without a title are skipped. Every note gets
// a fresh UUID; the original IDs are not trusted across machines.
func ParseHTMLNotes(r io.Reader) ([]model.Note, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var notes []model.Note

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "article" {
			if note, ok := parseArticle(n); ok {
				notes = append(notes, note)
			}
			return // Don't recurse into article
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return notes, nil
}

// parseArticle extracts a note from a single <article> element.
func parseArticle(n *html.Node) (model.Note, bool) {
	note := model.Note{
		ID:    model.GenerateUUID(),
		Color: model.ParseColor(getAttr(n, "data-color")),
	}

	if getAttr(n, "data-pinned") == "true" {
		note.Pinned = true
	}

	note.CreatedAt = parseUnixAttr(n, "data-created")
	note.UpdatedAt = parseUnixAttr(n, "data-updated")
	if note.UpdatedAt.Before(note.CreatedAt) {
		note.UpdatedAt = note.CreatedAt
	}

	var tags []string
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch strings.ToLower(c.Data) {
			case "h2":
				note.Title = getTextContent(c)
				return
			case "pre", "p":
				if note.Content == "" {
					note.Content = getTextContent(c)
				}
				return
			case "li":
				if tag := getTextContent(c); tag != "" {
					tags = append(tags, tag)
				}
				return
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	note.Tags = model.NormalizeTags(tags)

	if strings.TrimSpace(note.Title) == "" {
		return model.Note{}, false
	}
	note.Title = strings.TrimSpace(note.Title)
	return note, true
}

// parseUnixAttr reads a unix-seconds attribute, defaulting to now.
func parseUnixAttr(n *html.Node, key string) time.Time {
	if v := getAttr(n, key); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(ts, 0)
		}
	}
	return time.Now()
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
