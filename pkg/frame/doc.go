// Package frame provides the scheduling primitives Weave runs on: a
// one-shot, repeatable "run on next frame" request and a single-goroutine
// event loop that serializes tasks and frame callbacks.
//
// Loop is used by servers and the CLI. Manual is used by tests: frames only
// fire when Flush is called.
package frame
