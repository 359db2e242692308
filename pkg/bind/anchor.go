package bind

import (
	"errors"

	"github.com/vango-dev/weave/pkg/dom"
)

// Anchor errors.
var (
	ErrDetachedAnchor = errors.New("bind: anchor has no parent")
	ErrDuplicateKey   = errors.New("bind: duplicate list key")
)

// Anchor is a non-rendering placeholder that owns the nodes currently placed
// immediately after it. Owned nodes may themselves be anchors.
type Anchor struct {
	node  *dom.Node
	owned []*dom.Node
	reset func()
}

type anchorKey struct{}

// AnchorOf returns the anchor represented by n, or nil.
func AnchorOf(n *dom.Node) *Anchor {
	a, _ := n.Meta(anchorKey{}).(*Anchor)
	return a
}

func newAnchor(doc *dom.Document, label string) *Anchor {
	a := &Anchor{node: doc.CreateComment(label)}
	a.node.SetMeta(anchorKey{}, a)
	return a
}

// Node returns the placeholder comment node.
func (a *Anchor) Node() *dom.Node { return a.node }

// Owned returns a snapshot of the anchored nodes, in order.
func (a *Anchor) Owned() []*dom.Node {
	return append([]*dom.Node(nil), a.owned...)
}

// Remove detaches n together with every node it anchors, transitively. An
// anchor removed this way forgets what it rendered; when it is inserted
// again its next update renders from scratch.
func Remove(n *dom.Node) {
	if a := AnchorOf(n); a != nil {
		for _, owned := range a.owned {
			Remove(owned)
		}
		a.owned = nil
		if a.reset != nil {
			a.reset()
		}
	}
	n.Remove()
}

// InsertBefore inserts n into parent before ref and then re-inserts every
// node n anchors, in order, right after it.
func InsertBefore(parent, n, ref *dom.Node) error {
	if err := parent.InsertBefore(n, ref); err != nil {
		return err
	}
	if a := AnchorOf(n); a != nil {
		for _, owned := range a.owned {
			if err := InsertBefore(parent, owned, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

// trailing returns the last live node of the range that starts at n,
// descending through anchors that own nodes.
func trailing(n *dom.Node) *dom.Node {
	for {
		a := AnchorOf(n)
		if a == nil || len(a.owned) == 0 {
			return n
		}
		n = a.owned[len(a.owned)-1]
	}
}

// control attaches the anchor's own binding.
func (a *Anchor) control(run func() error) {
	attach(&Binding{Kind: KindAnchor, Target: a.node, Key: "anchor", run: run})
}
