package dom

// Event is dispatched to node listeners.
type Event struct {
	Type    string
	Target  *Node
	Bubbles bool

	stopped bool
}

// NewEvent creates a bubbling event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: true}
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

type listener struct {
	fn func(*Event)
}

// AddEventListener registers fn for events of type typ on n. The returned
// function removes the listener.
func (n *Node) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	l := &listener{fn: fn}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		ls := n.listeners[typ]
		for i, cur := range ls {
			if cur == l {
				n.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// HasEventListener reports whether any listener for typ is registered on n.
func (n *Node) HasEventListener(typ string) bool {
	return len(n.listeners[typ]) > 0
}

// Dispatch delivers ev to n's listeners, then to its ancestors' while the
// event bubbles. Listeners registered during dispatch are not called.
func (n *Node) Dispatch(ev *Event) {
	ev.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		ls := append([]*listener(nil), cur.listeners[ev.Type]...)
		for _, l := range ls {
			l.fn(ev)
		}
		if !ev.Bubbles || ev.stopped {
			return
		}
	}
}

// ApplyInput records a value that originates from the user, such as typing
// into a control, and dispatches an event of type typ. The property write is
// not reported to write sinks because the client already holds the value.
func (n *Node) ApplyInput(key string, v any, typ string) {
	n.setProperty(key, v)
	n.Dispatch(NewEvent(typ))
}
