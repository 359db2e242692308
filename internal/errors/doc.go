// Package errors provides coded errors with explanations for the weave CLI,
// configuration loader and live server.
//
// Every code maps to a registered Template:
//
//	W1xx  runtime: bindings, lists, hooks, the frame loop
//	W2xx  configuration files and flags
//	W3xx  the live protocol
//	W4xx  CLI commands
//
// Errors can carry a file location, in which case Format prints the
// surrounding lines:
//
//	err := errors.New("W203").
//	    WithLocation("weave.yaml", 3, 9).
//	    WithSuggestion("use a port between 1 and 65535")
//	errors.Print(os.Stderr, err)
package errors
