package dom

import (
	"strings"
	"testing"
)

func TestParseFragment(t *testing.T) {
	d := NewDocument()
	nodes, err := d.ParseFragment(strings.NewReader(
		`<p class="lead  intro" style="color: red">Hi <b>there</b></p><!--note-->tail`), "")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}

	p := nodes[0]
	if p.Type != ElementNode || p.Tag != "p" {
		t.Fatalf("first node = %v %q", p.Type, p.Tag)
	}
	if strings.Join(p.Classes(), " ") != "lead intro" {
		t.Errorf("classes = %v", p.Classes())
	}
	if p.Style("color") != "red" {
		t.Errorf("style color = %q", p.Style("color"))
	}
	if p.HasAttribute("class") || p.HasAttribute("style") {
		t.Error("class/style should not be kept as raw attributes")
	}
	if p.TextContent() != "Hi there" {
		t.Errorf("text = %q", p.TextContent())
	}
	if nodes[1].Type != CommentNode || nodes[1].Data() != "note" {
		t.Errorf("second node = %v %q", nodes[1].Type, nodes[1].Data())
	}
	if nodes[2].Type != TextNode || nodes[2].Data() != "tail" {
		t.Errorf("third node = %v %q", nodes[2].Type, nodes[2].Data())
	}
	for _, n := range nodes {
		if n.Parent() != nil || n.Document() != d {
			t.Error("parsed nodes should be detached and owned by d")
		}
	}
}

func TestParseFragmentSVGNamespace(t *testing.T) {
	d := NewDocument()
	nodes, err := d.ParseFragment(strings.NewReader(`<svg><circle r="4"></circle></svg>`), "div")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	circle := nodes[0].FirstChild()
	if circle == nil || circle.Namespace != NamespaceSVG || circle.Tag != "circle" {
		t.Fatalf("circle = %+v", circle)
	}
	if v, _ := circle.GetAttribute("r"); v != "4" {
		t.Errorf("r = %q", v)
	}
}
