package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses trusted HTML in the context of an element with the
// given tag and returns detached nodes owned by d. Class and style attributes
// populate the class list and inline style.
func (d *Document) ParseFragment(r io.Reader, contextTag string) ([]*Node, error) {
	if contextTag == "" {
		contextTag = "div"
	}
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     contextTag,
		DataAtom: atom.Lookup([]byte(contextTag)),
	}
	parsed, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	out := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := d.convert(p); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// convert copies an x/net/html subtree into live nodes.
func (d *Document) convert(src *html.Node) *Node {
	var n *Node
	switch src.Type {
	case html.ElementNode:
		if src.Namespace != "" {
			n = d.CreateElementNS(src.Namespace, src.Data)
		} else {
			n = d.CreateElement(src.Data)
		}
		for _, a := range src.Attr {
			switch a.Key {
			case "class":
				for _, tok := range strings.Fields(a.Val) {
					if !n.HasClass(tok) {
						n.classes = append(n.classes, tok)
					}
				}
			case "style":
				n.style = append(n.style, ParseStyle(a.Val)...)
			default:
				n.attrs = append(n.attrs, Attribute{Key: a.Key, Val: a.Val})
			}
		}
	case html.TextNode:
		n = d.CreateTextNode(src.Data)
	case html.CommentNode:
		n = d.CreateComment(src.Data)
	default:
		return nil
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if child := d.convert(c); child != nil {
			n.link(child, nil)
		}
	}
	return n
}

// ParseStyle splits a CSS declaration list such as "color: red; top: 0".
func ParseStyle(s string) []StyleProperty {
	var out []StyleProperty
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		out = append(out, StyleProperty{Name: name, Value: value})
	}
	return out
}
