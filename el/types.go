package el

import (
	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
)

// Attr is a keyed construction argument. A Value of type bind.Getter (or a
// plain func() (any, error)) produces a binding; anything else is applied
// statically.
type Attr struct {
	Key   string
	Value any
}

// EventHandler attaches a listener for Event.
type EventHandler struct {
	Event   string
	Handler func(*dom.Event)
}

// classBinding binds the class list to several specs.
type classBinding struct {
	gets []bind.Getter
}

// twoWay carries both directions of a value or checked binding.
type twoWay struct {
	get bind.Getter
	set bind.Setter
}
