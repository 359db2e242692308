package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/weave/pkg/dom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the live node rendered inside <body>.
	Body *dom.Node

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Styles contains inline CSS styles
	Styles []string

	// ClientScript is the path of the script that applies live patches.
	// No script tag is written when empty.
	ClientScript string

	// LivePath is the WebSocket path announced to the client script.
	LivePath string

	// LiveSeq is the sequence number of the last patch frame reflected in
	// Body. The client resumes the stream after it.
	LiveSeq uint64

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string // name attribute
	Content string // content attribute
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if err := r.renderPageStart(w, page); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	return r.renderPageEnd(w, page)
}

// renderPageStart writes everything up to and including the <body> tag.
func (r *Renderer) renderPageStart(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "<body>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n<meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	for _, m := range page.Meta {
		if m.Name == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, `<meta name="%s" content="%s">`+"\n", escapeAttr(m.Name), escapeAttr(m.Content)); err != nil {
			return err
		}
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `<link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderPageEnd writes the client script and closes the document.
func (r *Renderer) renderPageEnd(w io.Writer, page PageData) error {
	if page.ClientScript != "" {
		if _, err := fmt.Fprintf(w, `<script src="%s" data-live="%s" data-seq="%d" defer></script>`+"\n",
			escapeAttr(page.ClientScript), escapeAttr(page.LivePath), page.LiveSeq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
