package bind

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/weave/pkg/dom"
)

func TestTrackerAttachDetachOnce(t *testing.T) {
	doc, _, r := newTestRoot(t)
	attached, detached := 0, 0

	left := doc.CreateElement("section")
	right := doc.CreateElement("section")
	mustMount(t, r, left)
	mustMount(t, r, right)

	card := doc.CreateElement("div")
	OnAttach(card, func(*dom.Node) error { attached++; return nil })
	OnDetach(card, func(*dom.Node) error { detached++; return nil })

	if err := left.AppendChild(card); err != nil {
		t.Fatal(err)
	}
	doc.FlushMutations()
	if attached != 1 || !r.IsLive(card) {
		t.Fatalf("attached = %d live = %v", attached, r.IsLive(card))
	}

	// Moving a connected node is neither a detach nor an attach.
	if err := right.AppendChild(card); err != nil {
		t.Fatal(err)
	}
	doc.FlushMutations()
	if attached != 1 || detached != 0 {
		t.Errorf("move fired hooks: attached = %d detached = %d", attached, detached)
	}

	// Removed and re-added in the same batch.
	card.Remove()
	right.AppendChild(card)
	doc.FlushMutations()
	if attached != 1 || detached != 0 {
		t.Errorf("remove+add fired hooks: attached = %d detached = %d", attached, detached)
	}

	card.Remove()
	doc.FlushMutations()
	if detached != 1 || r.IsLive(card) {
		t.Errorf("detached = %d live = %v", detached, r.IsLive(card))
	}

	right.AppendChild(card)
	doc.FlushMutations()
	if attached != 2 {
		t.Errorf("re-attach: attached = %d", attached)
	}
}

func TestTrackerRegistersSubtrees(t *testing.T) {
	doc, _, r := newTestRoot(t)
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	leaf := doc.CreateElement("b")
	Bind(inner, "title", Static("t"))
	Bind(leaf, "data-x", Static("y"))
	outer.AppendChild(inner)
	inner.AppendChild(leaf)

	mustMount(t, r, outer)
	if r.Live() != 2 {
		t.Fatalf("live = %d, want 2", r.Live())
	}
	if inner.Property("title") != "t" {
		t.Error("newly attached node not updated immediately")
	}

	outer.Remove()
	doc.FlushMutations()
	if r.Live() != 0 {
		t.Errorf("live after removal = %d", r.Live())
	}
}

func TestTrackerIgnoresDetachedInsertions(t *testing.T) {
	doc, _, r := newTestRoot(t)
	frag := doc.CreateElement("div")
	n := doc.CreateElement("p")
	Bind(n, "title", Static("x"))
	frag.AppendChild(n)
	doc.FlushMutations()
	if r.IsLive(n) {
		t.Error("node in a detached tree was registered")
	}
}

func TestNewRootScansConnectedTree(t *testing.T) {
	doc := dom.NewDocument()
	attached := 0
	div := doc.CreateElement("div")
	OnAttach(div, func(*dom.Node) error { attached++; return nil })
	Bind(div, "title", Static("hi"))
	doc.Root().AppendChild(div)

	r := NewRoot(doc, nil)
	defer r.Close()
	if !r.IsLive(div) || attached != 1 {
		t.Fatalf("live = %v attached = %d", r.IsLive(div), attached)
	}
	r.Update()
	if div.Property("title") != "hi" {
		t.Error("first pass did not update pre-connected node")
	}
}

func TestLifecycleHookKeys(t *testing.T) {
	doc, _, r := newTestRoot(t)
	var calls []string
	n := doc.CreateElement("div")
	Bind(n, "onAttach", func() (any, error) { calls = append(calls, "bind"); return nil, nil })
	LifecycleHook(n, "on_attach", func(*dom.Node) error { calls = append(calls, "hook"); return nil })
	if LifecycleHook(n, "onclick", func(*dom.Node) error { return nil }) != nil {
		t.Error("non-lifecycle key accepted")
	}
	mustMount(t, r, n)
	if strings.Join(calls, ",") != "bind,hook" {
		t.Errorf("calls = %v", calls)
	}
}

func TestErrorContainmentAndLogOnce(t *testing.T) {
	logger, buf := bufferLogger()
	doc, _, r := newTestRoot(t, WithLogger(logger))

	failing := true
	get := func() (any, error) {
		if failing {
			return nil, errors.New("boom")
		}
		return "ok", nil
	}
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	fine := doc.CreateElement("div")
	Bind(a, "title", get)
	Bind(b, "title", get)
	Bind(fine, "title", Static("fine"))

	box := doc.CreateElement("main")
	box.AppendChild(a)
	box.AppendChild(b)
	box.AppendChild(fine)
	mustMount(t, r, box)

	if fine.Property("title") != "fine" {
		t.Error("healthy binding was not updated")
	}
	errs := r.Errors()
	if len(errs) != 1 || errs[0].Description != "boom" || errs[0].Count != 2 {
		t.Fatalf("errors = %+v", errs)
	}
	first := errs[0].Err
	if first == nil || first.Error() != "boom" {
		t.Errorf("Err = %v, want the first boom", first)
	}
	failingBindings := map[*Binding]bool{Bindings(a)[0]: true, Bindings(b)[0]: true}
	if got := errs[0].Bindings; len(got) != 2 || !failingBindings[got[0]] || !failingBindings[got[1]] || got[0] == got[1] {
		t.Errorf("Bindings = %v, want the bindings of a and b", got)
	}
	if Bindings(a)[0].Err().Description != "boom" {
		t.Errorf("binding error = %+v", Bindings(a)[0].Err())
	}

	r.Update()
	r.Update()
	if got := r.Errors()[0].Err; got != first {
		t.Errorf("Err replaced by a later instance: %v", got)
	}
	if n := strings.Count(buf.String(), "binding failed"); n != 1 {
		t.Errorf("logged %d times, want once:\n%s", n, buf.String())
	}
	if got := r.Errors()[0].Count; got != 2 {
		t.Errorf("count after repeats = %d, want 2", got)
	}

	failing = false
	r.Update()
	if len(r.Errors()) != 0 {
		t.Errorf("entries not released: %+v", r.Errors())
	}
	if len(errs[0].Bindings) != 2 {
		t.Errorf("earlier snapshot changed: %v", errs[0].Bindings)
	}
	if a.Property("title") != "ok" || Bindings(a)[0].Err() != nil {
		t.Error("binding did not recover")
	}
}

func TestPanickingBindingIsContained(t *testing.T) {
	doc, _, r := newTestRoot(t)
	bad := doc.CreateElement("div")
	good := doc.CreateElement("div")
	Bind(bad, "title", func() (any, error) { panic("kaboom") })
	Bind(good, "title", Static("ok"))
	box := doc.CreateElement("div")
	box.AppendChild(bad)
	box.AppendChild(good)
	mustMount(t, r, box)

	if good.Property("title") != "ok" {
		t.Error("panic stopped other bindings")
	}
	errs := r.Errors()
	if len(errs) != 1 || errs[0].Description != "panic: kaboom" {
		t.Fatalf("errors = %+v", errs)
	}
	var pe *PanicError
	if !errors.As(protect(func() error { panic("x") }), &pe) || len(pe.Stack) == 0 {
		t.Error("protect should return a *PanicError with a stack")
	}
}

func TestErrorEntryFollowsChangingFailure(t *testing.T) {
	doc, _, r := newTestRoot(t)
	msg := "first"
	n := doc.CreateElement("div")
	Bind(n, "title", func() (any, error) { return nil, errors.New(msg) })
	mustMount(t, r, n)

	msg = "second"
	r.Update()
	errs := r.Errors()
	if len(errs) != 1 || errs[0].Description != "second" || errs[0].Count != 1 {
		t.Errorf("errors = %+v", errs)
	}
}

func TestHookFailureIsLogged(t *testing.T) {
	logger, buf := bufferLogger()
	doc, _, r := newTestRoot(t, WithLogger(logger))
	n := doc.CreateElement("div")
	OnAttach(n, func(*dom.Node) error { return errors.New("no attach") })
	OnAttach(n, func(*dom.Node) error { panic("bad attach") })
	Bind(n, "title", Static("still"))
	mustMount(t, r, n)

	if strings.Count(buf.String(), "lifecycle hook failed") != 2 {
		t.Errorf("log = %s", buf.String())
	}
	if n.Property("title") != "still" {
		t.Error("hook failure stopped the scoped update")
	}
}

func TestListenersRunAroundPass(t *testing.T) {
	logger, buf := bufferLogger()
	doc, _, r := newTestRoot(t, WithLogger(logger))
	var events []string
	n := doc.CreateElement("div")
	Bind(n, "title", func() (any, error) { events = append(events, "binding"); return "x", nil })
	mustMount(t, r, n)
	events = nil

	r.On(BeforeUpdate, "a", func() error { events = append(events, "before-a"); return nil })
	r.On(BeforeUpdate, "b", func() error { return errors.New("listener b") })
	r.On(AfterUpdate, "c", func() error { events = append(events, "after-c"); return nil })
	r.On(BeforeUpdate, "a", func() error { events = append(events, "before-a2"); return nil })

	r.Update()
	want := "before-a2,binding,after-c"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if !strings.Contains(buf.String(), "listener b") {
		t.Error("listener failure not logged")
	}

	events = nil
	r.Off(BeforeUpdate, "a")
	r.Off(AfterUpdate, "missing")
	r.Update()
	if got := strings.Join(events, ","); got != "binding,after-c" {
		t.Errorf("after Off events = %s", got)
	}
}

func TestScheduleCoalesces(t *testing.T) {
	doc, m, r := newTestRoot(t)
	passes := 0
	r.On(AfterUpdate, "count", func() error { passes++; return nil })
	mustMount(t, r, doc.CreateElement("div"))

	p1 := r.Schedule()
	p2 := r.Schedule()
	if p1 != p2 {
		t.Error("Schedule before the frame should return the same Pending")
	}
	if m.Pending() != 1 {
		t.Fatalf("frames requested = %d", m.Pending())
	}

	var order []string
	p1.Then(func() error { order = append(order, "then"); return nil })
	p1.Then(func() error { return errors.New("ignored") })

	select {
	case <-p1.Done():
		t.Fatal("done before the frame")
	default:
	}

	m.Flush()
	if passes != 1 {
		t.Errorf("passes = %d", passes)
	}
	if err := p1.Wait(context.Background()); err != nil {
		t.Errorf("Wait: %v", err)
	}
	if len(order) != 1 {
		t.Errorf("then callbacks = %v", order)
	}
	p1.Then(func() error { order = append(order, "late"); return nil })
	if len(order) != 2 {
		t.Error("Then on a finished pass should run immediately")
	}

	if p3 := r.Schedule(); p3 == p1 {
		t.Error("Schedule after the frame should start a new Pending")
	}
}

func TestPendingWaitHonorsContext(t *testing.T) {
	_, _, r := newTestRoot(t)
	p := r.Schedule()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait = %v", err)
	}
}

func TestReentrantUpdateSchedules(t *testing.T) {
	_, m, r := newTestRoot(t)
	depth, maxDepth := 0, 0
	r.On(BeforeUpdate, "reenter", func() error {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		r.Update()
		depth--
		return nil
	})

	r.Update()
	if maxDepth != 1 {
		t.Errorf("nested passes ran, depth = %d", maxDepth)
	}
	if m.Pending() != 1 {
		t.Errorf("re-entrant Update should schedule a frame, pending = %d", m.Pending())
	}
}

func TestCloseStopsTracking(t *testing.T) {
	doc, _, r := newTestRoot(t)
	n := doc.CreateElement("div")
	Bind(n, "title", Static("x"))
	mustMount(t, r, n)

	r.Close()
	if r.Live() != 0 {
		t.Errorf("live after Close = %d", r.Live())
	}
	m := doc.CreateElement("div")
	Bind(m, "title", Static("y"))
	doc.Root().AppendChild(m)
	doc.FlushMutations()
	if r.IsLive(m) {
		t.Error("closed root kept tracking")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	met := NewMetrics(reg, "test")
	doc, _, r := newTestRoot(t, WithMetrics(met))

	ok := doc.CreateElement("div")
	bad := doc.CreateElement("div")
	Bind(ok, "title", Static("x"))
	Bind(bad, "title", func() (any, error) { return nil, errors.New("nope") })
	OnAttach(bad, func(*dom.Node) error { return errors.New("hook") })
	box := doc.CreateElement("div")
	box.AppendChild(ok)
	box.AppendChild(bad)
	mustMount(t, r, box)

	r.Update()

	if got := testutil.ToFloat64(met.Passes); got != 1 {
		t.Errorf("passes = %v", got)
	}
	if got := testutil.ToFloat64(met.LiveNodes); got != 2 {
		t.Errorf("live nodes = %v", got)
	}
	if got := testutil.ToFloat64(met.BindingErrors.WithLabelValues("property")); got != 2 {
		t.Errorf("binding failures = %v", got)
	}
	if got := testutil.ToFloat64(met.HookErrors.WithLabelValues("attach")); got != 1 {
		t.Errorf("hook failures = %v", got)
	}
	// ok and bad: title twice each, plus bad's attach binding twice.
	if got := testutil.ToFloat64(met.BindingUpdates); got != 6 {
		t.Errorf("binding updates = %v", got)
	}
	if n := testutil.CollectAndCount(met.PassDuration); n != 1 {
		t.Errorf("pass duration series = %d", n)
	}

	box.Remove()
	doc.FlushMutations()
	if got := testutil.ToFloat64(met.LiveNodes); got != 0 {
		t.Errorf("live nodes after removal = %v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.passDone(time.Now())
	m.bindingUpdated()
	m.bindingFailed(KindClass)
	m.liveDelta(1)
	m.hookFailed("attach")
}
