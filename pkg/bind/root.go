package bind

import (
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/frame"
)

// tracerName is the instrumentation scope used when no tracer is configured.
const tracerName = "github.com/vango-dev/weave/pkg/bind"

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger used for binding, hook and listener failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Root) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Root) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for update pass spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Root) {
		if t != nil {
			r.tracer = t
		}
	}
}

// Root owns the runtime state of one render root: the registry of live bound
// nodes, the error table, the global listeners and the pending frame.
//
// A Root must only be used from the goroutine that owns its document.
type Root struct {
	doc   *dom.Document
	sched frame.Scheduler

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	live      map[*dom.Node]uint64
	liveSeq   uint64
	errors    map[string]*ErrorEntry
	listeners [2][]listener

	pending  *Pending
	updating bool
	closed   bool
	stop     func()
}

// NewRoot creates a root over doc and starts observing its mutations. Bound
// nodes that are already connected are registered and their attach hooks run.
func NewRoot(doc *dom.Document, sched frame.Scheduler, opts ...Option) *Root {
	r := &Root{
		doc:    doc,
		sched:  sched,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		live:   make(map[*dom.Node]uint64),
		errors: make(map[string]*ErrorEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.stop = doc.Observe(r.handleMutations)

	for _, n := range r.collect(doc.Root()) {
		r.register(n)
		r.runHooks(n, KindAttach)
	}
	return r
}

// Document returns the document the root observes.
func (r *Root) Document() *dom.Document { return r.doc }

// Mount appends n to parent and processes the resulting mutations, so that n
// is live and up to date when Mount returns.
func (r *Root) Mount(parent, n *dom.Node) error {
	if err := InsertBefore(parent, n, nil); err != nil {
		return err
	}
	r.doc.FlushMutations()
	return nil
}

// Close stops observing the document and forgets every live node. Detach
// hooks do not run.
func (r *Root) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.stop()
	for n := range r.live {
		r.deregister(n)
	}
}

// Live returns the number of registered bound nodes.
func (r *Root) Live() int { return len(r.live) }

// IsLive reports whether n is registered.
func (r *Root) IsLive(n *dom.Node) bool {
	_, ok := r.live[n]
	return ok
}

func (r *Root) register(n *dom.Node) {
	if _, ok := r.live[n]; ok {
		return
	}
	r.liveSeq++
	r.live[n] = r.liveSeq
	for _, b := range Bindings(n) {
		b.root = r
	}
	r.metrics.liveDelta(1)
}

func (r *Root) deregister(n *dom.Node) {
	if _, ok := r.live[n]; !ok {
		return
	}
	delete(r.live, n)
	for _, b := range Bindings(n) {
		r.release(b)
	}
	r.metrics.liveDelta(-1)
}

// liveNodes returns the registered nodes in registration order.
func (r *Root) liveNodes() []*dom.Node {
	nodes := make([]*dom.Node, 0, len(r.live))
	for n := range r.live {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return r.live[nodes[i]] < r.live[nodes[j]]
	})
	return nodes
}

// collect returns the bound nodes of the subtree at n in document order.
func (r *Root) collect(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	n.Walk(func(c *dom.Node) bool {
		if HasBindings(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// handleMutations is the attachment tracker. Removed nodes that are no longer
// connected are deregistered and their detach hooks run. Bound nodes in
// added, still connected subtrees that are not registered yet are registered,
// their attach hooks run and their bindings are brought up to date.
func (r *Root) handleMutations(records []dom.MutationRecord) {
	if r.closed {
		return
	}

	for _, rec := range records {
		for _, n := range rec.Removed {
			if n.IsConnected() {
				continue
			}
			for _, c := range r.collect(n) {
				if !r.IsLive(c) {
					continue
				}
				r.deregister(c)
				r.runHooks(c, KindDetach)
			}
		}
	}

	var attached []*dom.Node
	for _, rec := range records {
		for _, n := range rec.Added {
			if !n.IsConnected() {
				continue
			}
			for _, c := range r.collect(n) {
				if r.IsLive(c) {
					continue
				}
				r.register(c)
				attached = append(attached, c)
			}
		}
	}
	for _, n := range attached {
		if !r.IsLive(n) || !n.IsConnected() {
			continue
		}
		r.runHooks(n, KindAttach)
		r.updateNode(n)
	}
}

// runHooks runs n's lifecycle hooks of the given kind.
func (r *Root) runHooks(n *dom.Node, kind Kind) {
	for _, b := range Bindings(n) {
		if b.Kind != kind || b.hook == nil {
			continue
		}
		hook := b.hook
		if err := protect(func() error { return hook(n) }); err != nil {
			r.metrics.hookFailed(kind.String())
			r.logger.Error("lifecycle hook failed",
				"hook", kind.String(),
				"key", b.Key,
				"node", n.ID(),
				"error", err)
		}
	}
}

// logListenerError reports a failing event handler installed by a binding.
func (r *Root) logListenerError(event string, b *Binding, err error) {
	r.metrics.hookFailed(event)
	r.logger.Error("input handler failed",
		"event", event,
		"binding", b.Kind.String(),
		"key", b.Key,
		"node", b.Target.ID(),
		"error", err)
}
