package tree

import "reflect"

// Equal reports whether a and b are structurally equal. It terminates on
// cyclic documents: a pair of nodes already being compared further up is
// assumed equal, so two cycles that unfold identically compare equal.
func Equal(a, b Node) bool {
	return equal(a, b, make(map[[2]Node]bool))
}

func equal(a, b Node, inProgress map[[2]Node]bool) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindAbsent:
		return true
	case KindScalar:
		return ScalarEqual(a.Value(), b.Value())
	}

	if a == b {
		return true
	}
	pair := [2]Node{a, b}
	if inProgress[pair] {
		return true
	}
	inProgress[pair] = true
	defer delete(inProgress, pair)

	if a.Len() != b.Len() {
		return false
	}
	if a.IsMap() {
		ra, rb := a.raw(), b.raw()
		for i, k := range ra.keys {
			if rb.keys[i] != k {
				return false
			}
			if !equal(Node{doc: a.doc, id: ra.values[i]}, Node{doc: b.doc, id: rb.values[i]}, inProgress) {
				return false
			}
		}
		return true
	}
	for i := 0; i < a.Len(); i++ {
		if !equal(a.Index(i), b.Index(i), inProgress) {
			return false
		}
	}
	return true
}

// ScalarEqual compares two normalized scalar values. Integers and floats
// holding the same number are equal.
func ScalarEqual(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
