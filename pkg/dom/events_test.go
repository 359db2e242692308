package dom

import "testing"

func TestDispatchBubbles(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div")
	inner := d.CreateElement("button")
	outer.AppendChild(inner)

	var order []string
	outer.AddEventListener("click", func(e *Event) {
		order = append(order, "outer")
		if e.Target != inner {
			t.Error("target should be the dispatching node")
		}
	})
	inner.AddEventListener("click", func(*Event) { order = append(order, "inner") })

	inner.Dispatch(NewEvent("click"))
	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Errorf("order = %v", order)
	}
}

func TestStopPropagation(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div")
	inner := d.CreateElement("button")
	outer.AppendChild(inner)

	outerCalls := 0
	outer.AddEventListener("click", func(*Event) { outerCalls++ })
	inner.AddEventListener("click", func(e *Event) { e.StopPropagation() })

	inner.Dispatch(NewEvent("click"))
	if outerCalls != 0 {
		t.Errorf("outer called %d times", outerCalls)
	}
}

func TestRemoveEventListener(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("button")
	calls := 0
	remove := n.AddEventListener("click", func(*Event) { calls++ })
	if !n.HasEventListener("click") {
		t.Fatal("listener not registered")
	}

	remove()
	n.Dispatch(NewEvent("click"))
	if calls != 0 || n.HasEventListener("click") {
		t.Errorf("removed listener called %d times", calls)
	}
}

func TestApplyInputIsNotReported(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")
	d.Root().AppendChild(input)

	writes := 0
	d.OnWrite(func(Patch) { writes++ })
	var seen any
	input.AddEventListener("input", func(e *Event) { seen = e.Target.Property("value") })

	input.ApplyInput("value", "typed", "input")

	if seen != "typed" {
		t.Errorf("listener saw %v, want typed", seen)
	}
	if writes != 0 {
		t.Errorf("user input reported %d writes", writes)
	}
}
