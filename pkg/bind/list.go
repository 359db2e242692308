package bind

import (
	"fmt"

	"github.com/vango-dev/weave/pkg/dom"
)

// List returns an anchor that renders one entry per item of the array
// produced by get. Items are identified by value: an item present in both
// the previous and the new array keeps its nodes and is moved, never
// re-rendered. Arrays with repeated values fail with ErrDuplicateKey; use
// ListBy with an explicit key to render them.
func List[T comparable](doc *dom.Document, get func() ([]T, error), render func(T) any) *dom.Node {
	return ListBy(doc, get, func(v T) T { return v }, render)
}

// ListBy is List with items identified by key(item) instead of by value.
// An item whose key is unchanged keeps its rendered nodes even if other
// fields of the item changed.
func ListBy[T any, K comparable](doc *dom.Document, get func() ([]T, error), key func(T) K, render func(T) any) *dom.Node {
	l := &list[T, K]{
		anchor: newAnchor(doc, "list"),
		doc:    doc,
		get:    get,
		key:    key,
		render: render,
	}
	l.anchor.reset = func() {
		l.lastKeys = nil
		l.lastEntries = nil
	}
	l.anchor.control(l.update)
	return l.anchor.node
}

// entry is the flattened output of one render call.
type entry struct {
	nodes []*dom.Node
}

// change records where a key sits in the previous and the new array.
type change struct {
	iNew, iLast int
}

type list[T any, K comparable] struct {
	anchor *Anchor
	doc    *dom.Document
	get    func() ([]T, error)
	key    func(T) K
	render func(T) any

	lastKeys    []K
	lastEntries []*entry
}

func (l *list[T, K]) update() error {
	items, err := l.get()
	if err != nil {
		return err
	}
	keys := make([]K, len(items))
	seen := make(map[K]struct{}, len(items))
	for i, item := range items {
		k := l.key(item)
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %v at index %d", ErrDuplicateKey, k, i)
		}
		seen[k] = struct{}{}
		keys[i] = k
	}

	parent := l.anchor.node.Parent()
	if parent == nil {
		return ErrDetachedAnchor
	}

	// Collect keys whose position changed. Keys equal at the same index are
	// skipped entirely.
	changes := make(map[K]*change)
	var order []K
	lookup := func(k K) *change {
		c, ok := changes[k]
		if !ok {
			c = &change{iNew: -1, iLast: -1}
			changes[k] = c
			order = append(order, k)
		}
		return c
	}
	n := max(len(l.lastKeys), len(keys))
	for i := 0; i < n; i++ {
		if i < len(l.lastKeys) && i < len(keys) && l.lastKeys[i] == keys[i] {
			continue
		}
		if i < len(keys) {
			lookup(keys[i]).iNew = i
		}
		if i < len(l.lastKeys) {
			lookup(l.lastKeys[i]).iLast = i
		}
	}
	if len(changes) == 0 {
		return nil
	}

	tail := l.tail()

	// updated mirrors the slots of the new array. Slots not yet claimed by
	// their new owner still hold the previous entry, so at every step the
	// non-empty slots appear in the tree in slot order.
	updated := make([]*entry, n)
	copy(updated, l.lastEntries)

	for _, k := range order {
		if c := changes[k]; c.iNew < 0 {
			for _, node := range l.lastEntries[c.iLast].nodes {
				Remove(node)
			}
			updated[c.iLast] = nil
		}
	}

	for _, k := range order {
		c := changes[k]
		if c.iNew < 0 {
			continue
		}
		var e *entry
		moved := c.iLast >= 0
		if moved {
			e = l.lastEntries[c.iLast]
		} else {
			e = &entry{nodes: Nodes(l.doc, l.render(items[c.iNew]))}
		}

		if len(e.nodes) > 0 {
			next := tail
			for _, other := range updated[c.iNew:] {
				if other != nil && len(other.nodes) > 0 {
					next = other.nodes[0]
					break
				}
			}
			inPlace := moved && (next == e.nodes[0] || trailing(e.nodes[len(e.nodes)-1]).NextSibling() == next)
			if !inPlace {
				for _, node := range e.nodes {
					if err := InsertBefore(parent, node, next); err != nil {
						return err
					}
				}
			}
		}

		updated[c.iNew] = e
		if moved && updated[c.iLast] == e {
			updated[c.iLast] = nil
		}
	}
	entries := updated[:len(keys)]

	owned := make([]*dom.Node, 0, len(entries))
	for _, e := range entries {
		owned = append(owned, e.nodes...)
	}
	l.anchor.owned = owned
	l.lastKeys = keys
	l.lastEntries = entries
	return nil
}

// tail returns the node that follows everything the list rendered last time.
func (l *list[T, K]) tail() *dom.Node {
	for i := len(l.lastEntries) - 1; i >= 0; i-- {
		if nodes := l.lastEntries[i].nodes; len(nodes) > 0 {
			return trailing(nodes[len(nodes)-1]).NextSibling()
		}
	}
	return l.anchor.node.NextSibling()
}
