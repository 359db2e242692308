package el

import "github.com/vango-dev/weave/pkg/dom"

// OnAttach runs fn each time the element becomes connected.
func OnAttach(fn func(*dom.Node) error) Attr {
	return Attr{Key: "onattach", Value: fn}
}

// OnDetach runs fn each time the element is disconnected.
func OnDetach(fn func(*dom.Node) error) Attr {
	return Attr{Key: "ondetach", Value: fn}
}
