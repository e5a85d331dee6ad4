// Package richtext segments HTML-bearing field values into translatable
// text units while preserving the surrounding markup.
//
// Catalog fields such as product descriptions frequently carry HTML
// fragments. Translating the raw fragment would waste provider characters
// on markup and risk broken tags in the output, so each text node becomes
// its own translation unit; units are reassembled into the original
// structure after translation.
package richtext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTags contains tags whose content is never translated.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// Field is a parsed field value: either plain text with a single segment,
// or an HTML fragment with one segment per text node.
type Field struct {
	raw   string
	body  *goquery.Selection
	texts []*html.Node
	segs  []string
}

// Parse splits a field value into translatable segments. Values without
// markup, and values that fail to parse, become a single plain segment.
func Parse(value string) *Field {
	if !strings.Contains(value, "<") {
		return &Field{raw: value, segs: []string{value}}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return &Field{raw: value, segs: []string{value}}
	}

	f := &Field{raw: value, body: doc.Find("body").First()}
	for _, n := range f.body.Nodes {
		f.collect(n)
	}
	if len(f.texts) == 0 {
		return &Field{raw: value, segs: []string{value}}
	}
	return f
}

func (f *Field) collect(n *html.Node) {
	if n.Type == html.ElementNode {
		if skippedTags[strings.ToLower(n.Data)] {
			return
		}
		for _, attr := range n.Attr {
			if attr.Key == "data-no-translate" {
				return
			}
		}
	}

	if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
		f.texts = append(f.texts, n)
		f.segs = append(f.segs, strings.TrimSpace(n.Data))
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.collect(c)
	}
}

// Segments returns the translatable units in document order.
func (f *Field) Segments() []string {
	return f.segs
}

// Apply substitutes the translated segments and renders the field back to a
// string. The slice must be positionally aligned with Segments; a segment
// left identical to its source passes through untouched.
func (f *Field) Apply(translated []string) string {
	if f.body == nil || len(f.texts) == 0 {
		if len(translated) > 0 {
			return translated[0]
		}
		return f.raw
	}

	for i, n := range f.texts {
		if i >= len(translated) {
			break
		}
		// Keep the original leading/trailing whitespace around the text.
		prefix := leadingSpace(n.Data)
		suffix := trailingSpace(n.Data)
		n.Data = prefix + translated[i] + suffix
	}

	out, err := f.body.Html()
	if err != nil {
		return f.raw
	}
	return out
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t\n\r"))]
}

func trailingSpace(s string) string {
	return s[len(strings.TrimRight(s, " \t\n\r")):]
}
