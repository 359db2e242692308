package bind

import "github.com/vango-dev/weave/pkg/dom"

// If returns an anchor that renders then while pred is true and otherwise
// renders otherwise. Both branches go through the appendable-node rule once
// and are reused across toggles.
func If(doc *dom.Document, pred func() (bool, error), then, otherwise any) *dom.Node {
	c := &conditional{
		anchor:    newAnchor(doc, "if"),
		pred:      pred,
		doc:       doc,
		thenSpec:  then,
		otherSpec: otherwise,
	}
	c.anchor.reset = func() { c.hasLast = false }
	c.anchor.control(c.update)
	return c.anchor.node
}

// IfValue is If with a truthiness test on an arbitrary getter.
func IfValue(doc *dom.Document, get Getter, then, otherwise any) *dom.Node {
	return If(doc, func() (bool, error) {
		v, err := get()
		if err != nil {
			return false, err
		}
		return Truthy(v), nil
	}, then, otherwise)
}

type conditional struct {
	anchor *Anchor
	pred   func() (bool, error)
	doc    *dom.Document

	thenSpec, otherSpec   any
	thenNodes, otherNodes []*dom.Node
	coerced               bool

	last    bool
	hasLast bool
}

func (c *conditional) update() error {
	v, err := c.pred()
	if err != nil {
		return err
	}
	if c.hasLast && v == c.last {
		return nil
	}
	parent := c.anchor.node.Parent()
	if parent == nil {
		return ErrDetachedAnchor
	}
	if !c.coerced {
		c.thenNodes = Nodes(c.doc, c.thenSpec)
		c.otherNodes = Nodes(c.doc, c.otherSpec)
		c.coerced = true
	}

	for _, n := range c.anchor.owned {
		Remove(n)
	}
	c.anchor.owned = nil

	set := c.otherNodes
	if v {
		set = c.thenNodes
	}
	ref := c.anchor.node.NextSibling()
	for _, n := range set {
		if err := InsertBefore(parent, n, ref); err != nil {
			return err
		}
	}
	c.anchor.owned = append([]*dom.Node(nil), set...)
	c.last, c.hasLast = v, true
	return nil
}
