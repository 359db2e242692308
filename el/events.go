package el

import "github.com/vango-dev/weave/pkg/dom"

// On attaches handler to event. handler is a func(*dom.Event) or a func().
func On(event string, handler any) EventHandler {
	switch h := handler.(type) {
	case func(*dom.Event):
		return EventHandler{Event: event, Handler: h}
	case func():
		return EventHandler{Event: event, Handler: func(*dom.Event) { h() }}
	default:
		return EventHandler{}
	}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return On("dblclick", handler) }

// OnInput handles input events.
func OnInput(handler any) EventHandler { return On("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return On("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler any) EventHandler { return On("submit", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return On("keydown", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return On("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return On("blur", handler) }
