package bind

import (
	"fmt"
	"runtime/debug"
	"slices"
	"sort"
	"time"
)

// ErrorEntry is one row of a Root's error table. Failing bindings with the
// same error description share an entry.
type ErrorEntry struct {
	// Description is the error text the entry is keyed by.
	Description string

	// Err is the first error recorded under Description.
	Err error

	// First is when the entry was created.
	First time.Time

	// Count is the number of bindings currently failing with Description.
	Count int

	// Bindings are the bindings currently failing with Description, in the
	// order they started failing. Entries returned by Root.Errors hold a
	// copy.
	Bindings []*Binding
}

// PanicError wraps a value recovered from a panicking getter, setter, hook or
// listener.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// protect runs fn and converts a panic into a *PanicError.
func protect(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// fail records that b failed with err. Only the creation of a table entry is
// logged; a binding that keeps failing the same way stays silent.
func (r *Root) fail(b *Binding, err error) {
	r.metrics.bindingFailed(b.Kind)

	desc := err.Error()
	if b.err != nil {
		if b.err.Description == desc {
			return
		}
		r.release(b)
	}

	e, ok := r.errors[desc]
	if !ok {
		e = &ErrorEntry{Description: desc, Err: err, First: time.Now()}
		r.errors[desc] = e
		r.logger.Error("binding failed",
			"binding", b.Kind.String(),
			"key", b.Key,
			"node", b.Target.ID(),
			"error", err)
	}
	e.Bindings = append(e.Bindings, b)
	e.Count = len(e.Bindings)
	b.err = e
}

// release drops b's claim on its error entry, deleting the entry once no
// binding fails with it anymore.
func (r *Root) release(b *Binding) {
	e := b.err
	if e == nil {
		return
	}
	b.err = nil
	e.Bindings = slices.DeleteFunc(e.Bindings, func(other *Binding) bool { return other == b })
	e.Count = len(e.Bindings)
	if e.Count == 0 {
		delete(r.errors, e.Description)
	}
}

// Errors returns a snapshot of the error table, oldest entry first.
func (r *Root) Errors() []ErrorEntry {
	out := make([]ErrorEntry, 0, len(r.errors))
	for _, e := range r.errors {
		entry := *e
		entry.Bindings = slices.Clone(e.Bindings)
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].First.Equal(out[j].First) {
			return out[i].First.Before(out[j].First)
		}
		return out[i].Description < out[j].Description
	})
	return out
}
