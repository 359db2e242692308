package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vango-dev/weave/pkg/dom"
)

// IDAttr is the attribute that carries a node ID when IDs are annotated.
const IDAttr = "data-wid"

// Markers written when IDs are annotated, so that the browser ends up with
// the same child list as the live tree. The client replaces EmptyTextMarker
// with an empty text node and drops SplitMarker, which keeps adjacent text
// nodes from being merged by the parser.
const (
	EmptyTextMarker = "w:t"
	SplitMarker     = "w:s"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used for snapshots, never for live documents: the extra
	// whitespace becomes text nodes in the browser.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// AnnotateIDs adds a data-wid attribute with the node ID to every
	// element, so that streamed patches can address it.
	AnnotateIDs bool
}

// Renderer serializes live nodes to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node and its subtree to an HTML string.
func (r *Renderer) RenderToString(n *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node and its subtree to w.
func (r *Renderer) RenderToWriter(w io.Writer, n *dom.Node) error {
	return r.renderNode(w, n, 0)
}

// renderNode dispatches rendering based on node type.
func (r *Renderer) renderNode(w io.Writer, n *dom.Node, depth int) error {
	if n == nil {
		return nil
	}

	switch n.Type {
	case dom.ElementNode:
		return r.renderElement(w, n, depth)
	case dom.TextNode:
		return r.renderText(w, n)
	case dom.CommentNode:
		return r.renderComment(w, n, depth)
	case dom.FragmentNode, dom.DocumentNode:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := r.renderNode(w, c, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unknown node type: %d", n.Type)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, n *dom.Node, depth int) error {
	tag := n.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, n); err != nil {
		return err
	}

	if n.Namespace == "" && isVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	// A textarea shows its value property, not its children.
	if tag == "textarea" && n.Property("value") != nil {
		if _, err := io.WriteString(w, escapeHTML(valueString(n.Property("value")))); err != nil {
			return err
		}
	} else {
		hasBlockChildren := n.FirstChild() != nil && !isInlineElement(tag) && !isRawTextElement(tag)
		if r.config.Pretty && hasBlockChildren {
			w.Write([]byte{'\n'})
		}

		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if isRawTextElement(tag) && c.Type == dom.TextNode {
				if _, err := io.WriteString(w, c.Data()); err != nil {
					return err
				}
				continue
			}
			if err := r.renderNode(w, c, depth+1); err != nil {
				return err
			}
		}

		if r.config.Pretty && hasBlockChildren {
			r.writeIndent(w, depth)
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
	return nil
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, n *dom.Node) error {
	if r.config.AnnotateIDs {
		if n.Data() == "" {
			_, err := io.WriteString(w, "<!--"+EmptyTextMarker+"-->")
			return err
		}
		if prev := n.PrevSibling(); prev != nil && prev.Type == dom.TextNode {
			if _, err := io.WriteString(w, "<!--"+SplitMarker+"-->"); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, escapeHTML(n.Data()))
	return err
}

// renderComment renders comments, including If and List anchors, so that the
// browser tree keeps the same shape as the live tree.
func (r *Renderer) renderComment(w io.Writer, n *dom.Node, depth int) error {
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "<!--%s-->", escapeComment(n.Data())); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
	return nil
}

// renderAttributes renders attributes in insertion order, then the class
// list, the inline style and reflected properties.
func (r *Renderer) renderAttributes(w io.Writer, n *dom.Node) error {
	if r.config.AnnotateIDs {
		if _, err := fmt.Fprintf(w, ` %s="%d"`, IDAttr, n.ID()); err != nil {
			return err
		}
	}

	var classAttr, styleAttr string
	for _, a := range n.Attributes() {
		switch {
		case a.Key == "class":
			classAttr = a.Val
			continue
		case a.Key == "style":
			styleAttr = a.Val
			continue
		case isBooleanAttr(a.Key) && a.Val == "":
			if _, err := fmt.Fprintf(w, " %s", a.Key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Key, escapeAttr(a.Val)); err != nil {
			return err
		}
	}

	classes := n.Classes()
	if classAttr != "" {
		classes = append(strings.Fields(classAttr), classes...)
	}
	if len(classes) > 0 {
		if _, err := fmt.Fprintf(w, ` class="%s"`, escapeAttr(strings.Join(classes, " "))); err != nil {
			return err
		}
	}

	decls := make([]string, 0, len(n.StyleProperties())+1)
	if s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(styleAttr), ";")); s != "" {
		decls = append(decls, s)
	}
	for _, p := range n.StyleProperties() {
		decls = append(decls, p.Name+": "+p.Value)
	}
	if len(decls) > 0 {
		if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(strings.Join(decls, "; "))); err != nil {
			return err
		}
	}

	return r.renderProperties(w, n)
}

// renderProperties reflects the properties HTML can express as attributes.
func (r *Renderer) renderProperties(w io.Writer, n *dom.Node) error {
	for _, key := range n.PropertyKeys() {
		v := n.Property(key)
		switch {
		case key == "value":
			if n.Tag == "textarea" || v == nil || n.HasAttribute("value") {
				continue
			}
			if _, err := fmt.Fprintf(w, ` value="%s"`, escapeAttr(valueString(v))); err != nil {
				return err
			}
		case isBooleanAttr(key):
			if on, ok := v.(bool); ok && on && !n.HasAttribute(key) {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// valueString converts a property value to its attribute form.
func valueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return ""
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
