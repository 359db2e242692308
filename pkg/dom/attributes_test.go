package dom

import (
	"strings"
	"testing"
)

func TestAttributes(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("a")

	n.SetAttribute("href", "/a")
	n.SetAttribute("data-id", "1")
	n.SetAttribute("href", "/b")

	if v, ok := n.GetAttribute("href"); !ok || v != "/b" {
		t.Errorf("href = %q, %v", v, ok)
	}
	attrs := n.Attributes()
	if len(attrs) != 2 || attrs[0].Key != "href" || attrs[1].Key != "data-id" {
		t.Errorf("attrs = %+v", attrs)
	}

	n.RemoveAttribute("href")
	if n.HasAttribute("href") {
		t.Error("href still present")
	}
	n.RemoveAttribute("missing")
}

func TestRemoveMissingAttributeReportsNothing(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("a")
	d.Root().AppendChild(n)
	writes := 0
	d.OnWrite(func(Patch) { writes++ })

	n.RemoveAttribute("missing")
	if writes != 0 {
		t.Errorf("writes = %d, want 0", writes)
	}
}

func TestProperties(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("input")

	if n.Property("value") != nil {
		t.Error("unset property should be nil")
	}
	n.SetProperty("value", "a")
	n.SetProperty("checked", true)
	n.SetProperty("value", "b")

	if n.Property("value") != "b" || n.Property("checked") != true {
		t.Errorf("value=%v checked=%v", n.Property("value"), n.Property("checked"))
	}
	keys := n.PropertyKeys()
	if strings.Join(keys, ",") != "value,checked" {
		t.Errorf("keys = %v", keys)
	}
}

func TestClasses(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("div")

	n.AddClass("a")
	n.AddClass("b")
	n.AddClass("a")
	if strings.Join(n.Classes(), " ") != "a b" {
		t.Errorf("classes = %v", n.Classes())
	}
	n.RemoveClass("a")
	if n.HasClass("a") || !n.HasClass("b") {
		t.Errorf("classes = %v", n.Classes())
	}
}

func TestStyle(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("div")

	n.SetStyle("color", "red")
	n.SetStyle("top", "0")
	n.SetStyle("color", "blue")
	if n.Style("color") != "blue" {
		t.Errorf("color = %q", n.Style("color"))
	}
	if props := n.StyleProperties(); len(props) != 2 || props[0].Name != "color" {
		t.Errorf("style = %+v", props)
	}

	n.SetStyle("color", "")
	if n.Style("color") != "" || len(n.StyleProperties()) != 1 {
		t.Errorf("style after removal = %+v", n.StyleProperties())
	}
}

func TestParseStyle(t *testing.T) {
	got := ParseStyle("color: red; ; top:0;bad; width: ")
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0] != (StyleProperty{"color", "red"}) || got[1] != (StyleProperty{"top", "0"}) {
		t.Errorf("got %+v", got)
	}
}

func TestVoidAndBooleanTables(t *testing.T) {
	if !IsVoidElement("input") || IsVoidElement("div") {
		t.Error("IsVoidElement misclassifies")
	}
	if !IsBooleanProperty("checked") || IsBooleanProperty("value") {
		t.Error("IsBooleanProperty misclassifies")
	}
}
