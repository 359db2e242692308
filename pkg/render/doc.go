// Package render serializes live Weave nodes to HTML.
//
// It produces valid, escaped HTML5 for any subtree of a document:
//
//   - Text and attribute escaping
//   - Void elements (input, br, img, etc.)
//   - Class tokens and inline style declarations
//   - Reflected properties such as value and checked
//   - If and List anchors as comments, so the browser tree has the same shape
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Live documents
//
// With AnnotateIDs every element carries its node ID in a data-wid
// attribute. Patches streamed by the server address nodes by these IDs.
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{Title: "Todos", Body: app})
package render
