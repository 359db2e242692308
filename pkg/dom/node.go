package dom

import (
	"errors"
	"strings"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota + 1 // <div>, <input>, etc.
	TextNode                         // Plain text
	CommentNode                      // Comment, also used for anchors
	FragmentNode                     // Grouping container, emptied on insert
	DocumentNode                     // Document root
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case FragmentNode:
		return "Fragment"
	case DocumentNode:
		return "Document"
	default:
		return "Unknown"
	}
}

// Tree errors.
var (
	ErrNotChild        = errors.New("dom: reference node is not a child of this node")
	ErrHierarchy       = errors.New("dom: node cannot be inserted into its own subtree")
	ErrCrossDocument   = errors.New("dom: node belongs to another document")
	ErrInvalidChild    = errors.New("dom: node type cannot have children")
	ErrInvalidInsertee = errors.New("dom: document nodes cannot be inserted")
)

// Node is a live tree node.
type Node struct {
	Type      NodeType
	Tag       string // Lower-case tag name, elements only
	Namespace string // Empty for the default (HTML) namespace

	id  uint64
	doc *Document

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	data string // Text and comment payload

	attrs     []Attribute
	props     map[string]any
	propOrder []string
	classes   []string
	style     []StyleProperty

	listeners map[string][]*listener
	meta      map[any]any
}

// ID returns the document-unique identifier of the node.
func (n *Node) ID() uint64 { return n.id }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prevSibling }

// Children returns a snapshot of the child list.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// Index returns the position of n among its siblings, or -1 if detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	i := 0
	for c := n.parent.firstChild; c != nil; c = c.nextSibling {
		if c == n {
			return i
		}
		i++
	}
	return -1
}

// Data returns the text payload of a text or comment node.
func (n *Node) Data() string { return n.data }

// SetData replaces the payload of a text or comment node.
func (n *Node) SetData(s string) {
	n.data = s
	if n.Type == TextNode {
		n.doc.write(n, Patch{Op: PatchSetText, Value: s})
	}
}

// IsConnected reports whether the node is reachable from the document root.
func (n *Node) IsConnected() bool {
	for p := n; p != nil; p = p.parent {
		if p.Type == DocumentNode {
			return p == n.doc.root
		}
	}
	return false
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.firstChild; c != nil; {
		next := c.nextSibling
		c.Walk(fn)
		c = next
	}
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode || n.Type == CommentNode {
		return n.data
	}
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			b.WriteString(c.data)
		}
		return true
	})
	return b.String()
}

// SetTextContent replaces every child of an element with a single text node.
func (n *Node) SetTextContent(s string) {
	if n.Type == TextNode || n.Type == CommentNode {
		n.SetData(s)
		return
	}
	for c := n.firstChild; c != nil; c = n.firstChild {
		n.RemoveChild(c)
	}
	if s != "" {
		n.AppendChild(n.doc.CreateTextNode(s))
	}
}

// AppendChild appends child to n.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref. A nil ref appends.
// A child that already has a parent is moved. Fragments are emptied into n.
func (n *Node) InsertBefore(child, ref *Node) error {
	if n.Type == TextNode || n.Type == CommentNode {
		return ErrInvalidChild
	}
	if child.Type == DocumentNode {
		return ErrInvalidInsertee
	}
	if child.doc != n.doc {
		return ErrCrossDocument
	}
	if ref != nil && ref.parent != n {
		return ErrNotChild
	}
	if child.Contains(n) {
		return ErrHierarchy
	}

	if child.Type == FragmentNode {
		for c := child.firstChild; c != nil; c = child.firstChild {
			if err := n.InsertBefore(c, ref); err != nil {
				return err
			}
		}
		return nil
	}

	if child == ref {
		ref = child.nextSibling
	}
	if child.parent == n && child.nextSibling == ref {
		return nil
	}

	moved := child.parent != nil && child.parent.IsConnected() && n.IsConnected()
	var from uint64
	var fromIndex int
	if moved {
		from, fromIndex = child.parent.id, child.Index()
	}
	if child.parent != nil {
		child.parent.unlink(child, !moved)
	}
	n.link(child, ref)

	if n.IsConnected() {
		op := PatchInsertNode
		if moved {
			op = PatchMoveNode
		}
		p := Patch{Op: op, Parent: n.id, From: from, FromIndex: fromIndex, Node: child}
		if ref != nil {
			p.Before = ref.id
		}
		n.doc.write(child, p)
		n.doc.record(n, child, nil)
	}
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child.parent != n {
		return ErrNotChild
	}
	n.unlink(child, true)
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.unlink(n, true)
	}
}

// link splices child into n's child list before ref.
func (n *Node) link(child, ref *Node) {
	child.parent = n
	if ref == nil {
		child.prevSibling = n.lastChild
		child.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}
	child.nextSibling = ref
	child.prevSibling = ref.prevSibling
	if ref.prevSibling != nil {
		ref.prevSibling.nextSibling = child
	} else {
		n.firstChild = child
	}
	ref.prevSibling = child
}

// unlink removes child from n's child list. When report is set, a connected
// parent emits a RemoveNode patch. The mutation record is always queued.
func (n *Node) unlink(child *Node, report bool) {
	connected := n.IsConnected()
	if connected && report {
		n.doc.write(child, Patch{Op: PatchRemoveNode, Parent: n.id})
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil

	if connected {
		n.doc.record(n, nil, child)
	}
}

// SetMeta stores a value on the node under key. Packages layered on top of
// dom use private key types to attach their own state.
func (n *Node) SetMeta(key, value any) {
	if value == nil {
		delete(n.meta, key)
		return
	}
	if n.meta == nil {
		n.meta = make(map[any]any)
	}
	n.meta[key] = value
}

// Meta returns the value stored under key, or nil.
func (n *Node) Meta(key any) any {
	return n.meta[key]
}
