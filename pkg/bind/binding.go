package bind

import (
	"fmt"

	"github.com/vango-dev/weave/pkg/dom"
)

// Getter reads application state. It is called on every update pass and must
// be cheap; returning an identical value skips all writes.
type Getter func() (any, error)

// Setter writes a value coming from a bound control back into application
// state and returns the value to remember as the last observed one.
type Setter func(any) (any, error)

// Hook is an attach or detach lifecycle handler.
type Hook func(*dom.Node) error

// Static returns a getter that always yields v.
func Static(v any) Getter {
	return func() (any, error) { return v, nil }
}

// Func adapts a plain function to a Getter.
func Func[T any](fn func() T) Getter {
	return func() (any, error) { return fn(), nil }
}

// Set adapts a plain state writer to a Setter. The written value is
// remembered as is. A value of the wrong type is rejected; nil is passed
// through as the zero T.
func Set[T any](fn func(T)) Setter {
	return func(v any) (any, error) {
		t, ok := v.(T)
		if !ok && v != nil {
			return nil, fmt.Errorf("bind: setter wants %T, got %T", t, v)
		}
		fn(t)
		return v, nil
	}
}

// Binding is a live computation attached to one property of one node.
type Binding struct {
	Kind   Kind
	Target *dom.Node
	Key    string
	Subkey string

	get  []Getter
	set  Setter
	hook Hook
	run  func() error // anchor control

	last      any
	hasLast   bool
	listening bool

	root *Root
	err  *ErrorEntry
}

// Err returns the error entry this binding currently fails with, or nil.
func (b *Binding) Err() *ErrorEntry { return b.err }

// Last returns the last value observed or written by the binding.
func (b *Binding) Last() any { return b.last }

type bindingsKey struct{}

// Bindings returns the bindings attached to n, in attachment order.
func Bindings(n *dom.Node) []*Binding {
	bs, _ := n.Meta(bindingsKey{}).([]*Binding)
	return bs
}

// HasBindings reports whether n carries any binding.
func HasBindings(n *dom.Node) bool {
	return len(Bindings(n)) > 0
}

func attach(b *Binding) *Binding {
	b.Target.SetMeta(bindingsKey{}, append(Bindings(b.Target), b))
	return b
}

// Bind attaches a binding for key to n, choosing the strategy from the key:
// "class" and "className" bind class tokens, "style.<name>" one style
// property, "checked" and "value" two-way control state, "textContent" (or
// any key on a text node) text, attach/detach keys lifecycle hooks, aria-*
// and data-* keys (and every key on a non-HTML element) attributes, and
// everything else a property.
func Bind(n *dom.Node, key string, get Getter) *Binding {
	return BindSub(n, key, "", get)
}

// BindSub is Bind with an explicit sub-property, e.g. ("style", "color").
func BindSub(n *dom.Node, key, subkey string, get Getter) *Binding {
	key, subkey = splitKey(key, subkey)
	b := &Binding{
		Kind:   resolveKind(n, key, subkey),
		Target: n,
		Key:    key,
		Subkey: subkey,
	}
	switch b.Kind {
	case KindAttach, KindDetach:
		b.hook = func(*dom.Node) error {
			_, err := get()
			return err
		}
	default:
		b.get = []Getter{get}
	}
	return attach(b)
}

// Prop binds a property, bypassing key-based strategy selection.
func Prop(n *dom.Node, key string, get Getter) *Binding {
	return attach(&Binding{Kind: KindProperty, Target: n, Key: key, get: []Getter{get}})
}

// Attr binds an attribute. A nil value removes the attribute.
func Attr(n *dom.Node, key string, get Getter) *Binding {
	return attach(&Binding{Kind: KindAttribute, Target: n, Key: key, get: []Getter{get}})
}

// Class binds the class list to the union of one or more class specs.
func Class(n *dom.Node, gets ...Getter) *Binding {
	return attach(&Binding{Kind: KindClass, Target: n, Key: "class", get: gets})
}

// Style binds one inline style property. Nil renders as "".
func Style(n *dom.Node, name string, get Getter) *Binding {
	return attach(&Binding{Kind: KindStyle, Target: n, Key: "style", Subkey: name, get: []Getter{get}})
}

// Checked binds the checked state of a control in both directions. Either
// side may be nil: without a getter the binding only reads user input,
// without a setter user input is remembered but not written anywhere.
func Checked(n *dom.Node, get Getter, set Setter) *Binding {
	return twoWay(n, KindChecked, "checked", get, set)
}

// Value binds the value of a control in both directions. See Checked.
func Value(n *dom.Node, get Getter, set Setter) *Binding {
	return twoWay(n, KindValue, "value", get, set)
}

func twoWay(n *dom.Node, kind Kind, key string, get Getter, set Setter) *Binding {
	b := &Binding{Kind: kind, Target: n, Key: key, set: set}
	if get != nil {
		b.get = []Getter{get}
	}
	return attach(b)
}

// OnAttach registers fn to run once each time n becomes connected.
func OnAttach(n *dom.Node, fn Hook) *Binding {
	return attach(&Binding{Kind: KindAttach, Target: n, Key: "onattach", hook: fn})
}

// OnDetach registers fn to run once each time n is disconnected.
func OnDetach(n *dom.Node, fn Hook) *Binding {
	return attach(&Binding{Kind: KindDetach, Target: n, Key: "ondetach", hook: fn})
}

// LifecycleHook registers fn under a lifecycle key such as "onAttach" or
// "on-detach". It returns nil when key is not a lifecycle key.
func LifecycleHook(n *dom.Node, key string, fn Hook) *Binding {
	switch {
	case IsAttachKey(key):
		return attach(&Binding{Kind: KindAttach, Target: n, Key: key, hook: fn})
	case IsDetachKey(key):
		return attach(&Binding{Kind: KindDetach, Target: n, Key: key, hook: fn})
	default:
		return nil
	}
}

// Text creates a text node whose payload tracks get.
func Text(doc *dom.Document, get Getter) *dom.Node {
	n := doc.CreateTextNode("")
	attach(&Binding{Kind: KindText, Target: n, Key: "textContent", get: []Getter{get}})
	return n
}
