package render

import (
	"io"
	"net/http"
)

// StreamingRenderer writes a page section by section, flushing after the
// head, the body and the closing tags when the writer is an http.Flusher.
type StreamingRenderer struct {
	*Renderer
	w       io.Writer
	flusher http.Flusher
}

func NewStreamingRenderer(w io.Writer, config RendererConfig) *StreamingRenderer {
	s := &StreamingRenderer{Renderer: NewRenderer(config), w: w}
	s.flusher, _ = w.(http.Flusher)
	return s
}

// RenderPage writes the complete document for page.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	sections := []func() error{
		func() error { return s.renderPageStart(s.w, page) },
		func() error { return s.RenderToWriter(s.w, page.Body) },
		func() error { return s.renderPageEnd(s.w, page) },
	}
	for _, section := range sections {
		if err := section(); err != nil {
			return err
		}
		if s.flusher != nil {
			s.flusher.Flush()
		}
	}
	return nil
}
