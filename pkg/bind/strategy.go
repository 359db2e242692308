package bind

import (
	"fmt"

	"github.com/vango-dev/weave/pkg/dom"
)

// update runs the binding's strategy once. Errors from getters propagate to
// the caller; nothing is written when the getter fails.
func (b *Binding) update() error {
	switch b.Kind {
	case KindProperty, KindAttribute:
		return b.updateGeneric()
	case KindClass:
		return b.updateClass()
	case KindStyle:
		return b.updateStyle()
	case KindChecked:
		return b.updateTwoWay("change", nil)
	case KindValue:
		return b.updateTwoWay("input", func(v any) any { return textValue(v) })
	case KindText:
		return b.updateText()
	case KindAnchor:
		return b.run()
	case KindAttach, KindDetach:
		return nil
	default:
		return fmt.Errorf("bind: unknown binding kind %d", b.Kind)
	}
}

func (b *Binding) updateGeneric() error {
	v, err := b.get[0]()
	if err != nil {
		return err
	}
	if b.hasLast && same(v, b.last) {
		return nil
	}
	if b.Kind == KindAttribute {
		if v == nil {
			b.Target.RemoveAttribute(b.Key)
		} else {
			b.Target.SetAttribute(b.Key, stringify(v))
		}
	} else {
		b.Target.SetProperty(b.Key, v)
	}
	b.last, b.hasLast = v, true
	return nil
}

// updateClass writes only the symmetric difference between the previous and
// the new token sets.
func (b *Binding) updateClass() error {
	specs := make([]any, 0, len(b.get))
	for _, get := range b.get {
		v, err := get()
		if err != nil {
			return err
		}
		specs = append(specs, v)
	}
	next := ClassTokens(specs...)
	prev, _ := b.last.([]string)

	inNext := make(map[string]struct{}, len(next))
	for _, tok := range next {
		inNext[tok] = struct{}{}
	}
	inPrev := make(map[string]struct{}, len(prev))
	for _, tok := range prev {
		inPrev[tok] = struct{}{}
		if _, ok := inNext[tok]; !ok {
			b.Target.RemoveClass(tok)
		}
	}
	for _, tok := range next {
		if _, ok := inPrev[tok]; !ok {
			b.Target.AddClass(tok)
		}
	}
	b.last, b.hasLast = next, true
	return nil
}

func (b *Binding) updateStyle() error {
	v, err := b.get[0]()
	if err != nil {
		return err
	}
	if b.hasLast && same(v, b.last) {
		return nil
	}
	if v == nil {
		b.Target.SetStyle(b.Subkey, "")
	} else {
		b.Target.SetStyle(b.Subkey, stringify(v))
	}
	b.last, b.hasLast = v, true
	return nil
}

func (b *Binding) updateText() error {
	v, err := b.get[0]()
	if err != nil {
		return err
	}
	s := textValue(v)
	if b.hasLast && same(s, b.last) {
		return nil
	}
	if b.Target.Type == dom.TextNode {
		b.Target.SetData(s)
	} else {
		b.Target.SetTextContent(s)
	}
	b.last, b.hasLast = s, true
	return nil
}

// updateTwoWay handles checked and value. The input listener is installed on
// the first update so it belongs to the root that registered the node.
func (b *Binding) updateTwoWay(event string, coerce func(any) any) error {
	if !b.listening {
		b.listening = true
		b.Target.AddEventListener(event, b.handleInput)
	}
	if len(b.get) == 0 {
		return nil
	}
	v, err := b.get[0]()
	if err != nil {
		return err
	}
	if coerce != nil {
		v = coerce(v)
	}
	if b.hasLast && same(v, b.last) {
		return nil
	}
	b.Target.SetProperty(b.Key, v)
	b.last, b.hasLast = v, true
	return nil
}

// handleInput pulls the live control value back into application state.
func (b *Binding) handleInput(*dom.Event) {
	raw := b.Target.Property(b.Key)
	if b.set == nil {
		b.last, b.hasLast = raw, true
		return
	}
	var v any
	err := protect(func() (err error) {
		v, err = b.set(raw)
		return err
	})
	if err != nil {
		if b.root != nil {
			b.root.logListenerError("input", b, err)
		}
		return
	}
	b.last, b.hasLast = v, true
	if b.root != nil {
		b.root.Schedule()
	}
}
