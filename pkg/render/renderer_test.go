package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/weave/el"
	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
)

func newBuilder() *el.Builder {
	return el.New(dom.NewDocument())
}

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	html, err := renderer.RenderToString(b.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	html, err := renderer.RenderToString(b.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	node := b.Div(el.Class("container"), el.ID("main"), el.Style("color: red"),
		b.H1("Title"),
		b.P("Content"),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div id="main" class="container" style="color: red"><h1>Title</h1><p>Content</p></div>`
	if html != want {
		t.Errorf("got  %q\nwant %q", html, want)
	}
}

func TestRenderVoidElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	tests := []struct {
		node *dom.Node
		want string
	}{
		{b.Br(), "<br>"},
		{b.Img(el.Src("/a.png"), el.Alt("a")), `<img src="/a.png" alt="a">`},
		{b.Hr(), "<hr>"},
	}
	for _, tt := range tests {
		html, err := renderer.RenderToString(tt.node)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if html != tt.want {
			t.Errorf("got %q, want %q", html, tt.want)
		}
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	html, err := renderer.RenderToString(b.Button(el.Disabled(true), el.Type("submit"), "Go"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<button disabled type="submit">Go</button>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderReflectedProperties(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	input := b.Input(el.Type("checkbox"), el.Prop("checked", true), el.Prop("value", `a"b`))
	html, err := renderer.RenderToString(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<input type="checkbox" checked value="a&quot;b">` {
		t.Errorf("got %q", html)
	}

	unchecked := b.Input(el.Prop("checked", false))
	if html, _ := renderer.RenderToString(unchecked); html != "<input>" {
		t.Errorf("unchecked rendered as %q", html)
	}

	area := b.Textarea(el.Prop("value", "<hi>"))
	if html, _ := renderer.RenderToString(area); html != "<textarea>&lt;hi&gt;</textarea>" {
		t.Errorf("textarea rendered as %q", html)
	}
}

func TestRenderAnchorsAsComments(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	ul := b.Ul(el.List(b, func() []string { return nil }, func(s string) any { return b.Li(s) }))
	html, err := renderer.RenderToString(ul)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<ul><!--list--></ul>" {
		t.Errorf("got %q", html)
	}

	doc := b.Doc()
	if html, _ := renderer.RenderToString(doc.CreateComment("a-->b")); strings.Contains(html[4:len(html)-3], "-->") {
		t.Errorf("comment data closed the comment: %q", html)
	}
}

func TestRenderAnnotateIDs(t *testing.T) {
	renderer := NewRenderer(RendererConfig{AnnotateIDs: true})
	b := newBuilder()

	span := b.Span("x")
	div := b.Div(span)
	html, err := renderer.RenderToString(div)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := fmt.Sprintf(`<div data-wid="%d"><span data-wid="%d">x</span></div>`, div.ID(), span.ID())
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderMergesClassAttribute(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	n := b.Div()
	n.SetAttribute("class", "raw")
	n.SetAttribute("style", "margin: 0;")
	n.AddClass("token")
	n.SetStyle("color", "red")
	html, _ := renderer.RenderToString(n)
	if html != `<div class="raw token" style="margin: 0; color: red"></div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderRawTextElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	html, _ := renderer.RenderToString(b.Script("if (a < b) {}"))
	if html != "<script>if (a < b) {}</script>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderSVGNotVoid(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	html, _ := renderer.RenderToString(b.Svg(b.Path(el.Prop("d", "M0 0"))))
	if html != `<svg><path d="M0 0"></path></svg>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true, Indent: "  "})
	b := newBuilder()

	html, err := renderer.RenderToString(b.Div(b.H1("Title"), b.P("Content")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "\n") {
		t.Errorf("pretty output should contain newlines, got %q", html)
	}
	if !strings.Contains(html, "  <h1>") {
		t.Errorf("pretty output should have indentation, got %q", html)
	}
}

func TestRenderNilNode(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("nil node should produce empty string, got %q", html)
	}
}

func TestRenderToWriterReflectsBindings(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	b := newBuilder()

	n := b.P(el.Bind("title", bind.Static("t")), "x")
	var buf bytes.Buffer
	if err := renderer.RenderToWriter(&buf, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Bindings only take effect once a root updates them.
	if buf.String() != "<p>x</p>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestRenderTextMarkers(t *testing.T) {
	b := newBuilder()
	doc := b.Doc()

	p := b.P()
	p.AppendChild(doc.CreateTextNode("a"))
	p.AppendChild(doc.CreateTextNode("b"))
	p.AppendChild(doc.CreateTextNode(""))

	plain, _ := NewRenderer(RendererConfig{}).RenderToString(p)
	if plain != "<p>ab</p>" {
		t.Errorf("plain = %q", plain)
	}

	annotated, _ := NewRenderer(RendererConfig{AnnotateIDs: true}).RenderToString(p)
	want := fmt.Sprintf(`<p data-wid="%d">a<!--w:s-->b<!--w:t--></p>`, p.ID())
	if annotated != want {
		t.Errorf("annotated = %q, want %q", annotated, want)
	}
}
