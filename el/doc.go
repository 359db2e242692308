// Package el provides the construction DSL for Weave.
//
// A Builder creates elements in one document. Arguments to element
// constructors are attributes, event handlers, lifecycle hooks, child nodes,
// strings, numbers, getters (dynamic text) and slices of any of these:
//
//	b := el.New(doc)
//	b.Div(
//	    el.Class("card", map[string]bool{"done": t.Done}),
//	    el.ClassFn(bind.Func(func() any { return state.Theme })),
//	    b.H2(el.Bind("title", bind.Func(t.Tooltip)), t.Title),
//	    b.Input(el.Type("text"), el.Value(bind.Func(q.Get), bind.Set(q.Set))),
//	    b.If(state.Loading, b.Span("loading"), nil),
//	)
//
// Static attribute values are applied once at construction. Values that are
// getters become bindings and are kept up to date by a bind.Root.
package el
