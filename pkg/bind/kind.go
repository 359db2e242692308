package bind

import (
	"regexp"
	"strings"

	"github.com/vango-dev/weave/pkg/dom"
)

// Kind selects the update strategy of a Binding.
type Kind uint8

const (
	KindProperty  Kind = iota + 1 // target[key] = value
	KindAttribute                 // setAttribute/removeAttribute
	KindClass                     // class token set
	KindStyle                     // one inline style property
	KindChecked                   // two-way checked
	KindValue                     // two-way value
	KindText                      // text payload
	KindAttach                    // attach lifecycle hook
	KindDetach                    // detach lifecycle hook
	KindAnchor                    // If/List anchor control
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindAttribute:
		return "attribute"
	case KindClass:
		return "class"
	case KindStyle:
		return "style"
	case KindChecked:
		return "checked"
	case KindValue:
		return "value"
	case KindText:
		return "text"
	case KindAttach:
		return "attach"
	case KindDetach:
		return "detach"
	case KindAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

var (
	attachKey    = regexp.MustCompile(`(?i)^on[-_]?attach$`)
	detachKey    = regexp.MustCompile(`(?i)^on[-_]?detach$`)
	attributeKey = regexp.MustCompile(`^(aria|data)-`)
)

// IsAttachKey reports whether key names an attach lifecycle hook.
func IsAttachKey(key string) bool { return attachKey.MatchString(key) }

// IsDetachKey reports whether key names a detach lifecycle hook.
func IsDetachKey(key string) bool { return detachKey.MatchString(key) }

// splitKey turns "style.color" into ("style", "color").
func splitKey(key, subkey string) (string, string) {
	if subkey == "" {
		if name, sub, ok := strings.Cut(key, "."); ok && name == "style" {
			return name, sub
		}
	}
	return key, subkey
}

// resolveKind picks the strategy for key on n.
func resolveKind(n *dom.Node, key, subkey string) Kind {
	switch {
	case n.Type == dom.TextNode:
		return KindText
	case key == "class" || key == "className":
		return KindClass
	case key == "style" && subkey != "":
		return KindStyle
	case key == "checked":
		return KindChecked
	case key == "value":
		return KindValue
	case key == "textContent":
		return KindText
	case IsAttachKey(key):
		return KindAttach
	case IsDetachKey(key):
		return KindDetach
	case attributeKey.MatchString(key), n.Namespace != "", key == "style":
		return KindAttribute
	default:
		return KindProperty
	}
}
