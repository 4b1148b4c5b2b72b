// Package diff implements the structural comparison primitives shared by
// the compare, import, and clone services: deep equality over JSON values,
// top-level property diffing, and name-based set reconciliation.
package diff

// maxDepth bounds recursion. Deserialized JSON is tree-shaped, so the
// bound only guards against pathological self-referential input.
const maxDepth = 100

// Equal reports deep structural equality over any JSON-representable
// value. nil equals only nil; arrays compare element-wise in order;
// objects compare by key set regardless of key order.
//
// Array comparison is deliberately order-sensitive: a reordered
// allow-list counts as a modification.
func Equal(a, b any) bool {
	return equal(a, b, 0)
}

func equal(a, b any, depth int) bool {
	if depth > maxDepth {
		return false
	}

	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, present := bv[k]
			if !present || !equal(v, bval, depth+1) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equal(av[i], bv[i], depth+1) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a, b)
	}
}

// scalarEqual compares primitive values. JSON numbers deserialize as
// float64, but documents assembled in code may carry ints; normalise
// numeric types before comparing.
func scalarEqual(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
