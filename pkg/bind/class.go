package bind

import (
	"reflect"
	"sort"
	"strings"
)

// ClassTokens normalizes a class specification into an ordered, duplicate-free
// token list. A spec is nil, a number, a whitespace-delimited string, a
// map[string]bool of conditional tokens, or a slice of specs nested to any
// depth. The tokens "true" and "false" are dropped so boolean expressions
// cannot leak into the class list.
func ClassTokens(specs ...any) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, spec := range specs {
		out = appendClassTokens(out, seen, spec)
	}
	return out
}

func appendClassTokens(out []string, seen map[string]struct{}, spec any) []string {
	add := func(s string) {
		for _, tok := range strings.Fields(s) {
			if tok == "true" || tok == "false" {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}

	switch val := spec.(type) {
	case nil, bool:
		return out
	case string:
		add(val)
		return out
	case []string:
		for _, s := range val {
			add(s)
		}
		return out
	case []any:
		for _, item := range val {
			out = appendClassTokens(out, seen, item)
		}
		return out
	case map[string]bool:
		keys := make([]string, 0, len(val))
		for k, on := range val {
			if on {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k)
		}
		return out
	}

	if rv := reflect.ValueOf(spec); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			out = appendClassTokens(out, seen, rv.Index(i).Interface())
		}
		return out
	}
	add(stringify(spec))
	return out
}
