package bind

// Phase names a point of an update pass where global listeners run.
type Phase uint8

const (
	BeforeUpdate Phase = iota
	AfterUpdate
)

func (p Phase) String() string {
	switch p {
	case BeforeUpdate:
		return "before-update"
	case AfterUpdate:
		return "after-update"
	default:
		return "unknown"
	}
}

type listener struct {
	name string
	fn   func() error
}

// On registers fn under name for phase. Registering an existing name
// replaces its function and keeps its position.
func (r *Root) On(phase Phase, name string, fn func() error) {
	ls := r.listeners[phase]
	for i := range ls {
		if ls[i].name == name {
			ls[i].fn = fn
			return
		}
	}
	r.listeners[phase] = append(ls, listener{name: name, fn: fn})
}

// Off removes the listener registered under name for phase.
func (r *Root) Off(phase Phase, name string) {
	ls := r.listeners[phase]
	for i := range ls {
		if ls[i].name == name {
			r.listeners[phase] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// emit runs the listeners of phase in registration order. A failing listener
// is logged and does not stop the others.
func (r *Root) emit(phase Phase) {
	ls := append([]listener(nil), r.listeners[phase]...)
	for _, l := range ls {
		if err := protect(l.fn); err != nil {
			r.metrics.hookFailed("listener")
			r.logger.Error("listener failed",
				"listener", l.name,
				"phase", phase.String(),
				"error", err)
		}
	}
}
