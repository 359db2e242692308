package bind

import (
	"errors"
	"testing"

	"github.com/vango-dev/weave/pkg/dom"
)

func TestIfSwapsBranches(t *testing.T) {
	doc, _, r := newTestRoot(t)
	show := true
	div := doc.CreateElement("div")
	p := doc.CreateElement("p")
	anchor := If(doc, func() (bool, error) { return show, nil }, p, "fallback")
	div.AppendChild(anchor)
	div.AppendChild(doc.CreateElement("footer"))
	mustMount(t, r, div)

	if anchor.NextSibling() != p {
		t.Fatal("then branch not rendered after the anchor")
	}

	show = false
	r.Update()
	if p.Parent() != nil {
		t.Error("then branch still attached")
	}
	next := anchor.NextSibling()
	if next == nil || next.Type != dom.TextNode || next.Data() != "fallback" {
		t.Fatalf("else branch = %+v", next)
	}
	if next.NextSibling() == nil || next.NextSibling().Tag != "footer" {
		t.Error("else branch not placed before the following sibling")
	}

	show = true
	r.Update()
	if anchor.NextSibling() != p {
		t.Error("then branch node was not reused")
	}
	if next.Parent() != nil {
		t.Error("else branch still attached")
	}
}

func TestIfUnchangedPredicateWritesNothing(t *testing.T) {
	doc, _, r := newTestRoot(t)
	div := doc.CreateElement("div")
	div.AppendChild(If(doc, func() (bool, error) { return true, nil }, "yes", nil))
	mustMount(t, r, div)

	w := recordWrites(t, doc)
	r.Update()
	if len(w.patches) != 0 {
		t.Errorf("unchanged predicate wrote %+v", w.patches)
	}
}

func TestIfRemovesNestedAnchorsRecursively(t *testing.T) {
	doc, _, r := newTestRoot(t)
	outer, inner := true, true
	detached := 0

	span := doc.CreateElement("span")
	OnDetach(span, func(*dom.Node) error { detached++; return nil })
	innerAnchor := If(doc, func() (bool, error) { return inner, nil }, span, nil)
	items := []string{"a", "b"}
	list := List(doc, func() ([]string, error) { return items, nil }, func(s string) any {
		li := doc.CreateElement("li")
		li.SetTextContent(s)
		return li
	})

	div := doc.CreateElement("div")
	div.AppendChild(If(doc, func() (bool, error) { return outer, nil }, []any{innerAnchor, list}, nil))
	mustMount(t, r, div)

	if span.Parent() != div || len(elementTexts(div)) != 3 {
		t.Fatalf("initial render: %v", elementTexts(div))
	}

	outer = false
	r.Update()
	if span.Parent() != nil || innerAnchor.Parent() != nil || list.Parent() != nil {
		t.Fatal("nested content still attached")
	}
	if div.FirstChild() == nil || div.FirstChild().NextSibling() != nil {
		t.Errorf("div should only hold the outer anchor, has %d children", len(div.Children()))
	}
	if detached != 1 {
		t.Errorf("detach hook ran %d times, want 1", detached)
	}
	if len(AnchorOf(innerAnchor).Owned()) != 0 || len(AnchorOf(list).Owned()) != 0 {
		t.Error("removed anchors still own nodes")
	}

	items = []string{"c"}
	outer = true
	r.Update()
	if got := elementTexts(div); len(got) != 2 || got[0] != "" || got[1] != "c" {
		t.Errorf("re-rendered content = %q", got)
	}
	if span.Parent() != div {
		t.Error("inner branch not re-rendered")
	}
}

func TestIfPredicateError(t *testing.T) {
	doc, _, r := newTestRoot(t)
	var err error
	div := doc.CreateElement("div")
	div.AppendChild(IfValue(doc, func() (any, error) { return "x", err }, "on", "off"))
	mustMount(t, r, div)

	err = errors.New("no state")
	r.Update()
	if div.TextContent() != "on" {
		t.Errorf("content = %q", div.TextContent())
	}
	if len(r.Errors()) != 1 {
		t.Errorf("errors = %+v", r.Errors())
	}
}
