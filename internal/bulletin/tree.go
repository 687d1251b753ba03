// Package bulletin extracts forecast time series from provider weather
// bulletins. The provider has shipped at least three structurally different
// document layouts, so extraction is an ordered chain of strategies tried
// most-specific-first, with raw-text pattern matching as a safety net when
// the tree has an unexpected shape.
package bulletin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Parse builds the markup tree for a bulletin document.
func Parse(text string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return root, nil
}

// localName strips any namespace prefix from a tag or attribute key.
// Applied uniformly at the tree-walk boundary so individual strategies never
// deal with prefixes.
func localName(tag string) string {
	if i := strings.LastIndexByte(tag, ':'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// matchTag reports whether the element's local tag name equals name,
// ignoring namespace prefix and case.
func matchTag(el *etree.Element, name string) bool {
	return strings.EqualFold(localName(el.Tag), name)
}

// walk visits el and every descendant element depth-first in document order.
func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, child := range el.ChildElements() {
		walk(child, fn)
	}
}

// findAll returns every element in el's subtree (including el) whose local
// tag name matches name, in document order.
func findAll(el *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	walk(el, func(node *etree.Element) {
		if matchTag(node, name) {
			out = append(out, node)
		}
	})
	return out
}

// attrValue returns the value of the first attribute whose local key matches
// any of names, or "" when none does.
func attrValue(el *etree.Element, names ...string) string {
	for _, attr := range el.Attr {
		key := localName(attr.Key)
		for _, name := range names {
			if strings.EqualFold(key, name) {
				return attr.Value
			}
		}
	}
	return ""
}

// text returns the element's trimmed character data.
func text(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}

// parseNumeric parses one token as a float, mapping empty tokens, the
// provider's "-" absent sentinel, and anything unparseable to nil.
func parseNumeric(tok string) *float64 {
	tok = strings.TrimSpace(tok)
	if tok == "" || tok == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseTokens splits whitespace-packed numeric text into values, one per
// token, preserving absent markers.
func parseTokens(s string) []*float64 {
	fields := strings.Fields(s)
	out := make([]*float64, 0, len(fields))
	for _, f := range fields {
		out = append(out, parseNumeric(f))
	}
	return out
}
