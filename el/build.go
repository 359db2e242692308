package el

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
)

// Builder creates nodes in one document.
type Builder struct {
	doc *dom.Document
}

// New returns a builder for doc.
func New(doc *dom.Document) *Builder {
	return &Builder{doc: doc}
}

// Doc returns the builder's document.
func (b *Builder) Doc() *dom.Document { return b.doc }

// E creates an element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *dom.Node, []*dom.Node,
// string, number, bind.Getter, func() string, or []any of those.
func (b *Builder) E(tag string, args ...any) *dom.Node {
	n := b.doc.CreateElement(tag)
	b.apply(n, args)
	return n
}

// NS creates an element in a namespace, e.g. dom.NamespaceSVG. Every key on
// such an element binds or sets an attribute.
func (b *Builder) NS(namespace, tag string, args ...any) *dom.Node {
	n := b.doc.CreateElementNS(namespace, tag)
	b.apply(n, args)
	return n
}

func (b *Builder) apply(n *dom.Node, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional arguments)
			continue

		case Attr:
			b.attr(n, v)

		case []Attr:
			for _, a := range v {
				b.attr(n, a)
			}

		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				n.AddEventListener(v.Event, v.Handler)
			}

		case []any:
			b.apply(n, v)

		default:
			for _, c := range b.children(arg) {
				n.AppendChild(c)
			}
		}
	}
}

// children converts a child argument to nodes.
func (b *Builder) children(v any) []*dom.Node {
	switch val := v.(type) {
	case bind.Getter:
		return []*dom.Node{bind.Text(b.doc, val)}
	case func() (any, error):
		return []*dom.Node{bind.Text(b.doc, val)}
	case func() string:
		return []*dom.Node{bind.Text(b.doc, bind.Func(val))}
	}
	return bind.Nodes(b.doc, v)
}

// attr applies one attribute, creating a binding when the value is dynamic.
func (b *Builder) attr(n *dom.Node, a Attr) {
	if a.Key == "" {
		return
	}
	switch v := a.Value.(type) {
	case bind.Getter:
		bind.Bind(n, a.Key, v)
	case func() (any, error):
		bind.Bind(n, a.Key, v)
	case classBinding:
		bind.Class(n, v.gets...)
	case twoWay:
		if a.Key == "checked" {
			bind.Checked(n, v.get, v.set)
		} else {
			bind.Value(n, v.get, v.set)
		}
	case bind.Hook:
		bind.LifecycleHook(n, a.Key, v)
	case func(*dom.Node) error:
		bind.LifecycleHook(n, a.Key, v)
	default:
		setStatic(n, a.Key, a.Value)
	}
}

// setStatic applies a value once. Class specs and style maps are normalized.
func setStatic(n *dom.Node, key string, v any) {
	switch {
	case key == "class" || key == "className":
		for _, tok := range bind.ClassTokens(v) {
			n.AddClass(tok)
		}
		return
	case key == "style":
		setStyle(n, v)
		return
	case strings.HasPrefix(key, "style."):
		if v != nil {
			n.SetStyle(strings.TrimPrefix(key, "style."), fmt.Sprint(v))
		}
		return
	case n.Namespace == "" && (key == "value" || key == "checked" || key == "selected"):
		n.SetProperty(key, v)
		return
	}

	switch val := v.(type) {
	case nil:
	case bool:
		if val {
			n.SetAttribute(key, "")
		} else {
			n.RemoveAttribute(key)
		}
	case string:
		n.SetAttribute(key, val)
	default:
		n.SetAttribute(key, fmt.Sprint(val))
	}
}

func setStyle(n *dom.Node, v any) {
	switch val := v.(type) {
	case string:
		for _, p := range dom.ParseStyle(val) {
			n.SetStyle(p.Name, p.Value)
		}
	case map[string]string:
		for _, name := range sortedKeys(val) {
			n.SetStyle(name, val[name])
		}
	case map[string]any:
		for _, name := range sortedKeys(val) {
			if val[name] != nil {
				n.SetStyle(name, fmt.Sprint(val[name]))
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
