package errors

import "sort"

// Template describes a registered error code.
type Template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://weave.dev/docs/errors/"

// Codes: W1xx runtime, W2xx configuration, W3xx live protocol, W4xx CLI.
var registry = map[string]Template{
	"W101": {
		Category: CategoryRuntime,
		Message:  "Binding failed",
		Detail:   "A binding's getter returned an error or panicked. The node keeps its previous value and the error is listed until the binding succeeds or its node is released.",
	},
	"W102": {
		Category: CategoryRuntime,
		Message:  "Duplicate list key",
		Detail:   "Two items of a list produced the same key. Keys must be unique within one list; use ListBy with an identifying key.",
	},
	"W103": {
		Category: CategoryRuntime,
		Message:  "Anchor is not in the document",
		Detail:   "Content was inserted relative to an anchor that has no parent.",
	},
	"W104": {
		Category: CategoryRuntime,
		Message:  "Lifecycle hook failed",
		Detail:   "An attach or detach hook returned an error or panicked.",
	},
	"W105": {
		Category: CategoryRuntime,
		Message:  "Frame loop stopped",
		Detail:   "Work was submitted to a frame loop that is no longer running.",
	},

	"W201": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No weave.yaml, weave.yml or weave.json was found in this directory or any parent.",
	},
	"W202": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"W203": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "Ports must be between 1 and 65535.",
	},
	"W204": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "Log levels are debug, info, warn and error.",
	},
	"W205": {
		Category: CategoryConfig,
		Message:  "Invalid log format",
		Detail:   "Log formats are text and json.",
	},
	"W206": {
		Category: CategoryConfig,
		Message:  "Invalid frame interval",
		Detail:   "The frame interval must be a positive duration such as \"16ms\".",
	},
	"W207": {
		Category: CategoryConfig,
		Message:  "Publish bucket not set",
		Detail:   "Publishing snapshots needs publish.bucket in the configuration or the --bucket flag.",
	},

	"W301": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "A frame could not be decoded.",
	},
	"W302": {
		Category: CategoryProtocol,
		Message:  "Unknown node",
		Detail:   "Input targeted a node that is no longer in the document.",
	},
	"W303": {
		Category: CategoryProtocol,
		Message:  "Client too far behind",
		Detail:   "The passes a client missed are no longer held in history; it has to reload the page.",
	},
	"W304": {
		Category: CategoryProtocol,
		Message:  "Patch too large",
		Detail:   "A single patch does not fit in one frame. Split large inserted subtrees into smaller ones.",
	},

	"W401": {
		Category: CategoryCLI,
		Message:  "Render failed",
		Detail:   "The document could not be rendered to HTML.",
	},
	"W402": {
		Category: CategoryCLI,
		Message:  "Publish failed",
		Detail:   "The snapshot could not be uploaded. Check the bucket name and the AWS credentials in the environment.",
	},
	"W403": {
		Category: CategoryCLI,
		Message:  "Cannot write output",
		Detail:   "The output file could not be created.",
	},
	"W404": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The live server stopped with an error.",
	},
}

func init() {
	for code, t := range registry {
		if t.DocURL == "" {
			t.DocURL = docBase + code
			registry[code] = t
		}
	}
}

// Codes returns the registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a code. It is not safe for concurrent use with
// New.
func Register(code string, t Template) {
	registry[code] = t
}
