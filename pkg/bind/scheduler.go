package bind

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/weave/pkg/dom"
)

// Pending is a scheduled update pass. Every Schedule call made before the
// frame fires returns the same Pending.
type Pending struct {
	root  *Root
	done  chan struct{}
	thens []func() error
}

// Done is closed once the pass has run.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the pass has run or ctx is done. It may be called from
// any goroutine.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Then registers fn to run after the pass. When the pass already ran, fn runs
// immediately. Failures are logged. Then must be called on the root's
// goroutine.
func (p *Pending) Then(fn func() error) {
	select {
	case <-p.done:
		p.root.runCallback(fn)
	default:
		p.thens = append(p.thens, fn)
	}
}

func (r *Root) runCallback(fn func() error) {
	if err := protect(fn); err != nil {
		r.metrics.hookFailed("pending")
		r.logger.Error("pending callback failed", "error", err)
	}
}

// Schedule requests an update pass on the next frame.
func (r *Root) Schedule() *Pending {
	if r.pending != nil {
		return r.pending
	}
	p := &Pending{root: r, done: make(chan struct{})}
	r.pending = p
	r.sched.RequestFrame(func() {
		r.pending = nil
		r.Update()
		close(p.done)
		for _, fn := range p.thens {
			r.runCallback(fn)
		}
		p.thens = nil
	})
	return p
}

// Update runs a pass synchronously: before-update listeners, every binding of
// every live connected node, then after-update listeners. Called from inside
// a pass, it schedules a pass instead.
func (r *Root) Update() {
	if r.closed {
		return
	}
	if r.updating {
		r.Schedule()
		return
	}
	r.updating = true
	defer func() { r.updating = false }()

	start := time.Now()
	_, span := r.tracer.Start(context.Background(), "weave.update")
	defer span.End()

	r.doc.FlushMutations()
	r.emit(BeforeUpdate)

	updated, failed := 0, 0
	for _, n := range r.liveNodes() {
		if !r.IsLive(n) || !n.IsConnected() {
			continue
		}
		u, f := r.updateNode(n)
		updated += u
		failed += f
	}
	r.doc.FlushMutations()

	r.emit(AfterUpdate)
	r.metrics.passDone(start)

	span.SetAttributes(
		attribute.Int("weave.live_nodes", len(r.live)),
		attribute.Int("weave.bindings", updated),
		attribute.Int("weave.failures", failed),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, "binding failures")
	}
}

// updateNode runs every binding of n and returns how many ran and failed.
func (r *Root) updateNode(n *dom.Node) (updated, failed int) {
	for _, b := range Bindings(n) {
		updated++
		if !r.runBinding(b) {
			failed++
		}
	}
	return updated, failed
}

// runBinding runs one binding with its failure contained.
func (r *Root) runBinding(b *Binding) bool {
	r.metrics.bindingUpdated()
	if err := protect(b.update); err != nil {
		r.fail(b, err)
		return false
	}
	r.release(b)
	return true
}
