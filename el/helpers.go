package el

import (
	"fmt"
	"strings"

	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
)

// Text creates a text node. A getter produces text that tracks it.
func (b *Builder) Text(v any) *dom.Node {
	switch val := v.(type) {
	case bind.Getter:
		return bind.Text(b.doc, val)
	case func() (any, error):
		return bind.Text(b.doc, val)
	case func() string:
		return bind.Text(b.doc, bind.Func(val))
	case string:
		return b.doc.CreateTextNode(val)
	default:
		return b.doc.CreateTextNode(fmt.Sprint(val))
	}
}

// Textf creates a formatted text node.
func (b *Builder) Textf(format string, args ...any) *dom.Node {
	return b.doc.CreateTextNode(fmt.Sprintf(format, args...))
}

// Raw parses trusted HTML into detached nodes.
// Use with caution - can lead to XSS if content is user-provided.
func (b *Builder) Raw(html string) ([]*dom.Node, error) {
	return b.doc.ParseFragment(strings.NewReader(html), "body")
}

// MustRaw is like Raw but panics if the HTML cannot be parsed.
func (b *Builder) MustRaw(html string) []*dom.Node {
	nodes, err := b.Raw(html)
	if err != nil {
		panic(fmt.Sprintf("el: raw html: %v", err))
	}
	return nodes
}

// Group flattens children into a node list without a wrapper element. The
// result can be reused as an If branch.
func (b *Builder) Group(children ...any) []*dom.Node {
	var out []*dom.Node
	for _, c := range children {
		out = append(out, b.children(c)...)
	}
	return out
}

// If renders then while pred returns true and otherwise while it returns
// false. Either branch may be nil.
func (b *Builder) If(pred func() bool, then, otherwise any) *dom.Node {
	return bind.If(b.doc, func() (bool, error) { return pred(), nil }, then, otherwise)
}

// When is If with a truthiness test on a getter.
func (b *Builder) When(get bind.Getter, then, otherwise any) *dom.Node {
	return bind.IfValue(b.doc, get, then, otherwise)
}

// Show renders node only while pred returns true.
func (b *Builder) Show(pred func() bool, node any) *dom.Node {
	return b.If(pred, node, nil)
}

// List renders one entry per item of items(). Items are identified by value.
func List[T comparable](b *Builder, items func() []T, render func(T) any) *dom.Node {
	return bind.List(b.doc, func() ([]T, error) { return items(), nil }, render)
}

// ListBy renders one entry per item, identified by key(item).
func ListBy[T any, K comparable](b *Builder, items func() []T, key func(T) K, render func(T) any) *dom.Node {
	return bind.ListBy(b.doc, func() ([]T, error) { return items(), nil }, key, render)
}
