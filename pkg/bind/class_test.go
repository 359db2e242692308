package bind

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weave/pkg/dom"
)

func TestClassTokens(t *testing.T) {
	tests := []struct {
		name  string
		specs []any
		want  []string
	}{
		{"string", []any{"  a b   c "}, []string{"a", "b", "c"}},
		{"nested", []any{"a", []any{"b", []string{"a", "c"}}}, []string{"a", "b", "c"}},
		{"map", []any{map[string]bool{"on": true, "off": false, "also": true}}, []string{"also", "on"}},
		{"booleans dropped", []any{true, "false x true", false}, []string{"x"}},
		{"numbers", []any{3, 1.5}, []string{"3", "1.5"}},
		{"nil", []any{nil}, nil},
		{"array", []any{[2]string{"p", "q"}}, []string{"p", "q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassTokens(tt.specs...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassTokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNodesFlattensAppendables(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.CreateElement("b")
	got := Nodes(doc, []any{"a", nil, true, "", 3, el, []string{"x", "y"}, func() any { return "z" }})

	var desc []string
	for _, n := range got {
		if n.Type == dom.TextNode {
			desc = append(desc, "#"+n.Data())
		} else {
			desc = append(desc, n.Tag)
		}
	}
	want := []string{"#a", "#3", "b", "#x", "#y", "#z"}
	if diff := cmp.Diff(want, desc); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []any{nil, false, 0, 0.0, "", []int{}, map[string]int{}, (*plain)(nil)} {
		if Truthy(v) {
			t.Errorf("Truthy(%#v) = true", v)
		}
	}
	for _, v := range []any{true, 1, -2.5, "x", []int{1}, &plain{}, plain{}} {
		if !Truthy(v) {
			t.Errorf("Truthy(%#v) = false", v)
		}
	}
}
