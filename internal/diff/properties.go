package diff

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// Properties compares two documents believed to represent the same policy
// and returns one PropertyChange per differing top-level key, in key order.
// Keys in ignore are never compared. A nil change list means the documents
// are structurally identical outside the ignored set.
func Properties(current, baseline domain.PolicyDocument, ignore func(string) bool) []domain.PropertyChange {
	keys := unionKeys(current, baseline)

	var changes []domain.PropertyChange
	for _, key := range keys {
		if ignore != nil && ignore(key) {
			continue
		}

		curVal, inCurrent := current[key]
		baseVal, inBaseline := baseline[key]
		if Equal(curVal, baseVal) {
			continue
		}

		changes = append(changes, domain.PropertyChange{
			Property: key,
			Before:   FormatValue(baseVal),
			After:    FormatValue(curVal),
			Kind:     changeKind(curVal, inCurrent, baseVal, inBaseline),
		})
	}
	return changes
}

// changeKind classifies a single property difference: added when only the
// current side carries a value, removed when only the baseline does,
// modified otherwise.
func changeKind(curVal any, inCurrent bool, baseVal any, inBaseline bool) domain.ChangeKind {
	curHas := inCurrent && curVal != nil
	baseHas := inBaseline && baseVal != nil
	switch {
	case curHas && !baseHas:
		return domain.ChangeAdded
	case !curHas && baseHas:
		return domain.ChangeRemoved
	default:
		return domain.ChangeModified
	}
}

// unionKeys returns the sorted union of both documents' top-level keys.
func unionKeys(a, b domain.PolicyDocument) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a value for display in a property change. Objects
// and arrays render as canonical JSON, nil as the literal "null". The
// output is presentation-only and never feeds back into equality.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		// Render whole numbers without a trailing ".0" so integer-valued
		// settings read naturally.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
