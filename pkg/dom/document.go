package dom

import "strings"

// Well-known namespaces. The empty namespace is the default (HTML) one.
const (
	NamespaceSVG    = "svg"
	NamespaceMathML = "math"
)

// Option configures a Document.
type Option func(*Document)

// WithDispatcher sets the function used to defer mutation delivery. The
// dispatcher receives a callback that must be run later on the document's
// goroutine, e.g. frame.Loop.Post. Without a dispatcher, records stay queued
// until FlushMutations is called.
func WithDispatcher(dispatch func(func())) Option {
	return func(d *Document) {
		d.dispatch = dispatch
	}
}

// maxFlushRounds bounds FlushMutations when observers keep mutating the tree.
const maxFlushRounds = 1024

// Document owns a tree of nodes and the observation streams built on it.
type Document struct {
	root   *Node
	nextID uint64

	dispatch  func(func())
	scheduled bool

	observers []*observer
	records   []MutationRecord

	sinks  []*sink
	sinkID uint64
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	d.root = d.newNode(DocumentNode)
	return d
}

// Root returns the document node. Nodes reachable from it are connected.
func (d *Document) Root() *Node { return d.root }

func (d *Document) newNode(t NodeType) *Node {
	d.nextID++
	return &Node{Type: t, id: d.nextID, doc: d}
}

// CreateElement creates a detached element in the default namespace.
func (d *Document) CreateElement(tag string) *Node {
	n := d.newNode(ElementNode)
	n.Tag = strings.ToLower(tag)
	return n
}

// CreateElementNS creates a detached element in the given namespace.
func (d *Document) CreateElementNS(namespace, tag string) *Node {
	n := d.newNode(ElementNode)
	n.Namespace = namespace
	n.Tag = tag
	return n
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(s string) *Node {
	n := d.newNode(TextNode)
	n.data = s
	return n
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(s string) *Node {
	n := d.newNode(CommentNode)
	n.data = s
	return n
}

// CreateFragment creates an empty fragment.
func (d *Document) CreateFragment() *Node {
	return d.newNode(FragmentNode)
}

// NodeByID finds a connected node by ID. It walks the tree.
func (d *Document) NodeByID(id uint64) *Node {
	var found *Node
	d.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

type sink struct {
	id uint64
	fn func(Patch)
}

// OnWrite registers fn to receive every write applied to a connected node.
// The returned function unregisters it.
func (d *Document) OnWrite(fn func(Patch)) (stop func()) {
	d.sinkID++
	s := &sink{id: d.sinkID, fn: fn}
	d.sinks = append(d.sinks, s)
	return func() {
		for i, cur := range d.sinks {
			if cur == s {
				d.sinks = append(d.sinks[:i:i], d.sinks[i+1:]...)
				return
			}
		}
	}
}

// write reports p for target to every sink when target is connected.
func (d *Document) write(target *Node, p Patch) {
	if len(d.sinks) == 0 || !target.IsConnected() {
		return
	}
	p.Target = target.id
	p.Index = target.Index()
	if p.Parent == 0 && target.parent != nil {
		p.Parent = target.parent.id
	}
	for _, s := range d.sinks {
		s.fn(p)
	}
}
