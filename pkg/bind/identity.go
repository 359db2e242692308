package bind

import "reflect"

// same reports whether a and b are the same value for memoization purposes.
// Comparable values use ==. Slices are the same when they share backing
// array, length and capacity. Maps, funcs and channels compare by pointer;
// funcs therefore compare by code pointer. Anything else is never the same.
func same(a, b any) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		// Interface-typed fields may still hold uncomparable values.
		defer func() {
			if recover() != nil {
				eq = false
			}
		}()
		return a == b
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}
