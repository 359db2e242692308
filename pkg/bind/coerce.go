package bind

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/vango-dev/weave/pkg/dom"
)

// stringify converts a value the way the platform would when assigning it to
// a string-typed slot.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(v)
	}
}

// textValue applies the text/value coercion: nil and booleans become "",
// everything else is stringified.
func textValue(v any) string {
	switch v.(type) {
	case nil, bool:
		return ""
	default:
		return stringify(v)
	}
}

// Truthy reports whether v counts as true for conditional rendering: nil,
// false, zero numbers, empty strings and empty slices/maps are false.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && f == f
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// Nodes applies the appendable-node rule to v: nodes pass through, nil,
// booleans and empty strings are dropped, slices are flattened, functions
// returning any are called, and every other value becomes a text node.
func Nodes(doc *dom.Document, v any) []*dom.Node {
	return appendNodes(nil, doc, v)
}

func appendNodes(out []*dom.Node, doc *dom.Document, v any) []*dom.Node {
	switch val := v.(type) {
	case nil, bool:
		return out
	case *dom.Node:
		if val == nil {
			return out
		}
		return append(out, val)
	case []*dom.Node:
		for _, n := range val {
			if n != nil {
				out = append(out, n)
			}
		}
		return out
	case []any:
		for _, item := range val {
			out = appendNodes(out, doc, item)
		}
		return out
	case func() any:
		return appendNodes(out, doc, val())
	case string:
		if val == "" {
			return out
		}
		return append(out, doc.CreateTextNode(val))
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			out = appendNodes(out, doc, rv.Index(i).Interface())
		}
		return out
	}
	return append(out, doc.CreateTextNode(stringify(v)))
}
