package bind

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/frame"
)

func newTestRoot(t *testing.T, opts ...Option) (*dom.Document, *frame.Manual, *Root) {
	t.Helper()
	doc := dom.NewDocument()
	m := frame.NewManual()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	r := NewRoot(doc, m, opts...)
	t.Cleanup(r.Close)
	return doc, m, r
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

type writeLog struct {
	patches []dom.Patch
}

func recordWrites(t *testing.T, doc *dom.Document) *writeLog {
	t.Helper()
	w := &writeLog{}
	stop := doc.OnWrite(func(p dom.Patch) { w.patches = append(w.patches, p) })
	t.Cleanup(stop)
	return w
}

func (w *writeLog) count(op dom.PatchOp) int {
	n := 0
	for _, p := range w.patches {
		if p.Op == op {
			n++
		}
	}
	return n
}

func (w *writeLog) reset() { w.patches = nil }

// elementTexts returns the text content of n's element children.
func elementTexts(n *dom.Node) []string {
	var out []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type == dom.ElementNode {
			out = append(out, c.TextContent())
		}
	}
	return out
}

func mustMount(t *testing.T, r *Root, n *dom.Node) {
	t.Helper()
	if err := r.Mount(r.Document().Root(), n); err != nil {
		t.Fatalf("Mount: %v", err)
	}
}
