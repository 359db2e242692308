// Package dom provides the live render tree that Weave bindings mutate.
//
// A Document owns a tree of Nodes: elements, text nodes, comments and
// fragments. Unlike a virtual DOM, this tree is the single source of truth:
// bindings write properties, attributes, class tokens and style properties
// directly onto nodes, and structural changes happen in place.
//
// # Observation
//
// Two streams leave the document:
//
//   - Mutation records (Observe) report child-list changes under connected
//     parents, batched and delivered through a dispatcher or FlushMutations.
//     The binding layer uses them to track attachment.
//   - Write patches (OnWrite) report every platform write on connected nodes
//     as it happens. The server streams them to the browser; tests count them.
//
// # Threading
//
// A Document is not safe for concurrent use. All access must happen on one
// goroutine, usually a frame.Loop.
package dom
