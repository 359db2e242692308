// Package bind provides the reactive update core for Weave.
//
// Reactivity is pull-based. A Binding pairs a getter with one property of one
// node; every update pass re-runs the getter and writes the node only when the
// result is not identical to the previously observed value. There is no
// dependency tracking.
//
// # Bindings
//
// Bindings are attached to nodes at construction time:
//
//	bind.Bind(input, "placeholder", bind.Static("Search"))
//	bind.Class(card, bind.Func(func() any { return []any{"card", state.Kind} }))
//	bind.Value(input, bind.Func(query.Get), bind.Set(query.Set))
//	bind.OnAttach(card, func(n *dom.Node) error { ... })
//
// The key selects the update strategy once, at bind time.
//
// # Anchors
//
// If and List return comment nodes that own the nodes rendered after them.
// Anchor-owned nodes move and disappear with their anchor; use Remove and
// InsertBefore instead of plain dom operations on anchors.
//
// # Roots
//
// A Root observes a document, registers bound nodes as they become connected,
// runs attach/detach hooks, and runs update passes, either immediately with
// Update or once per frame with Schedule. Binding failures are contained per
// binding and deduplicated in the Root's error table.
package bind
