package el

import "github.com/vango-dev/weave/pkg/dom"

// Document structure elements

func (b *Builder) Html(args ...any) *dom.Node    { return b.E("html", args...) }
func (b *Builder) Head(args ...any) *dom.Node    { return b.E("head", args...) }
func (b *Builder) Body(args ...any) *dom.Node    { return b.E("body", args...) }
func (b *Builder) Title(args ...any) *dom.Node   { return b.E("title", args...) }
func (b *Builder) Meta(args ...any) *dom.Node    { return b.E("meta", args...) }
func (b *Builder) LinkEl(args ...any) *dom.Node  { return b.E("link", args...) }
func (b *Builder) Base(args ...any) *dom.Node    { return b.E("base", args...) }
func (b *Builder) StyleEl(args ...any) *dom.Node { return b.E("style", args...) }
func (b *Builder) Script(args ...any) *dom.Node  { return b.E("script", args...) }

// Content sectioning elements

func (b *Builder) Header(args ...any) *dom.Node  { return b.E("header", args...) }
func (b *Builder) Footer(args ...any) *dom.Node  { return b.E("footer", args...) }
func (b *Builder) Main(args ...any) *dom.Node    { return b.E("main", args...) }
func (b *Builder) Nav(args ...any) *dom.Node     { return b.E("nav", args...) }
func (b *Builder) Section(args ...any) *dom.Node { return b.E("section", args...) }
func (b *Builder) Article(args ...any) *dom.Node { return b.E("article", args...) }
func (b *Builder) Aside(args ...any) *dom.Node   { return b.E("aside", args...) }
func (b *Builder) H1(args ...any) *dom.Node      { return b.E("h1", args...) }
func (b *Builder) H2(args ...any) *dom.Node      { return b.E("h2", args...) }
func (b *Builder) H3(args ...any) *dom.Node      { return b.E("h3", args...) }
func (b *Builder) H4(args ...any) *dom.Node      { return b.E("h4", args...) }
func (b *Builder) H5(args ...any) *dom.Node      { return b.E("h5", args...) }
func (b *Builder) H6(args ...any) *dom.Node      { return b.E("h6", args...) }

// Text content elements

func (b *Builder) Div(args ...any) *dom.Node        { return b.E("div", args...) }
func (b *Builder) P(args ...any) *dom.Node          { return b.E("p", args...) }
func (b *Builder) Span(args ...any) *dom.Node       { return b.E("span", args...) }
func (b *Builder) Pre(args ...any) *dom.Node        { return b.E("pre", args...) }
func (b *Builder) Blockquote(args ...any) *dom.Node { return b.E("blockquote", args...) }
func (b *Builder) Ul(args ...any) *dom.Node         { return b.E("ul", args...) }
func (b *Builder) Ol(args ...any) *dom.Node         { return b.E("ol", args...) }
func (b *Builder) Li(args ...any) *dom.Node         { return b.E("li", args...) }
func (b *Builder) Dl(args ...any) *dom.Node         { return b.E("dl", args...) }
func (b *Builder) Dt(args ...any) *dom.Node         { return b.E("dt", args...) }
func (b *Builder) Dd(args ...any) *dom.Node         { return b.E("dd", args...) }
func (b *Builder) Hr(args ...any) *dom.Node         { return b.E("hr", args...) }
func (b *Builder) Figure(args ...any) *dom.Node     { return b.E("figure", args...) }
func (b *Builder) Figcaption(args ...any) *dom.Node { return b.E("figcaption", args...) }

// Inline text semantics

func (b *Builder) A(args ...any) *dom.Node      { return b.E("a", args...) }
func (b *Builder) Strong(args ...any) *dom.Node { return b.E("strong", args...) }
func (b *Builder) Em(args ...any) *dom.Node     { return b.E("em", args...) }
func (b *Builder) B(args ...any) *dom.Node      { return b.E("b", args...) }
func (b *Builder) I(args ...any) *dom.Node      { return b.E("i", args...) }
func (b *Builder) Small(args ...any) *dom.Node  { return b.E("small", args...) }
func (b *Builder) Mark(args ...any) *dom.Node   { return b.E("mark", args...) }
func (b *Builder) Code(args ...any) *dom.Node   { return b.E("code", args...) }
func (b *Builder) Kbd(args ...any) *dom.Node    { return b.E("kbd", args...) }
func (b *Builder) Time_(args ...any) *dom.Node  { return b.E("time", args...) }
func (b *Builder) Br(args ...any) *dom.Node     { return b.E("br", args...) }

// Forms

func (b *Builder) Form(args ...any) *dom.Node     { return b.E("form", args...) }
func (b *Builder) Input(args ...any) *dom.Node    { return b.E("input", args...) }
func (b *Builder) Textarea(args ...any) *dom.Node { return b.E("textarea", args...) }
func (b *Builder) Select(args ...any) *dom.Node   { return b.E("select", args...) }
func (b *Builder) Option(args ...any) *dom.Node   { return b.E("option", args...) }
func (b *Builder) Button(args ...any) *dom.Node   { return b.E("button", args...) }
func (b *Builder) Label(args ...any) *dom.Node    { return b.E("label", args...) }
func (b *Builder) Fieldset(args ...any) *dom.Node { return b.E("fieldset", args...) }
func (b *Builder) Legend(args ...any) *dom.Node   { return b.E("legend", args...) }
func (b *Builder) Progress(args ...any) *dom.Node { return b.E("progress", args...) }

// Tables

func (b *Builder) Table(args ...any) *dom.Node { return b.E("table", args...) }
func (b *Builder) Thead(args ...any) *dom.Node { return b.E("thead", args...) }
func (b *Builder) Tbody(args ...any) *dom.Node { return b.E("tbody", args...) }
func (b *Builder) Tr(args ...any) *dom.Node    { return b.E("tr", args...) }
func (b *Builder) Th(args ...any) *dom.Node    { return b.E("th", args...) }
func (b *Builder) Td(args ...any) *dom.Node    { return b.E("td", args...) }

// Media and interactive elements

func (b *Builder) Img(args ...any) *dom.Node      { return b.E("img", args...) }
func (b *Builder) Video(args ...any) *dom.Node    { return b.E("video", args...) }
func (b *Builder) Audio(args ...any) *dom.Node    { return b.E("audio", args...) }
func (b *Builder) Canvas(args ...any) *dom.Node   { return b.E("canvas", args...) }
func (b *Builder) Details(args ...any) *dom.Node  { return b.E("details", args...) }
func (b *Builder) Summary(args ...any) *dom.Node  { return b.E("summary", args...) }
func (b *Builder) Dialog(args ...any) *dom.Node   { return b.E("dialog", args...) }
func (b *Builder) Template(args ...any) *dom.Node { return b.E("template", args...) }

// SVG elements

func (b *Builder) Svg(args ...any) *dom.Node    { return b.NS(dom.NamespaceSVG, "svg", args...) }
func (b *Builder) Circle(args ...any) *dom.Node { return b.NS(dom.NamespaceSVG, "circle", args...) }
func (b *Builder) Rect(args ...any) *dom.Node   { return b.NS(dom.NamespaceSVG, "rect", args...) }
func (b *Builder) Line(args ...any) *dom.Node   { return b.NS(dom.NamespaceSVG, "line", args...) }
func (b *Builder) Path(args ...any) *dom.Node   { return b.NS(dom.NamespaceSVG, "path", args...) }
func (b *Builder) G(args ...any) *dom.Node      { return b.NS(dom.NamespaceSVG, "g", args...) }

// IsVoidElement reports whether tag cannot have children.
func IsVoidElement(tag string) bool {
	return dom.IsVoidElement(tag)
}
