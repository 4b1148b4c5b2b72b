package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		a        any
		b        any
		expected bool
	}{
		{name: "equal strings", a: "policy", b: "policy", expected: true},
		{name: "different strings", a: "policy", b: "Policy", expected: false},
		{name: "equal numbers", a: 1.0, b: 1.0, expected: true},
		{name: "different numbers", a: 1.0, b: 2.0, expected: false},
		{name: "int equals float with same value", a: 5, b: 5.0, expected: true},
		{name: "equal booleans", a: true, b: true, expected: true},
		{name: "different booleans", a: true, b: false, expected: false},
		{name: "nil equals nil", a: nil, b: nil, expected: true},
		{name: "nil does not equal string", a: nil, b: "x", expected: false},
		{name: "nil does not equal false", a: nil, b: false, expected: false},
		{name: "nil does not equal zero", a: nil, b: 0.0, expected: false},
		{name: "string does not equal number", a: "1", b: 1.0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
		})
	}
}

func TestEqual_Arrays(t *testing.T) {
	tests := []struct {
		name     string
		a        any
		b        any
		expected bool
	}{
		{
			name:     "equal in order",
			a:        []any{"a", "b", "c"},
			b:        []any{"a", "b", "c"},
			expected: true,
		},
		{
			// Order sensitivity is deliberate: a reordered allow-list
			// counts as drift.
			name:     "same elements reordered",
			a:        []any{"a", "b", "c"},
			b:        []any{"c", "b", "a"},
			expected: false,
		},
		{
			name:     "different lengths",
			a:        []any{"a", "b"},
			b:        []any{"a", "b", "c"},
			expected: false,
		},
		{
			name:     "empty arrays",
			a:        []any{},
			b:        []any{},
			expected: true,
		},
		{
			name:     "nested arrays",
			a:        []any{[]any{1.0, 2.0}, []any{3.0}},
			b:        []any{[]any{1.0, 2.0}, []any{3.0}},
			expected: true,
		},
		{
			name:     "array does not equal object",
			a:        []any{"a"},
			b:        map[string]any{"0": "a"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
		})
	}
}

func TestEqual_Objects(t *testing.T) {
	tests := []struct {
		name     string
		a        any
		b        any
		expected bool
	}{
		{
			name:     "same keys and values",
			a:        map[string]any{"x": 1.0, "y": "z"},
			b:        map[string]any{"y": "z", "x": 1.0},
			expected: true,
		},
		{
			name:     "different values",
			a:        map[string]any{"x": 1.0},
			b:        map[string]any{"x": 2.0},
			expected: false,
		},
		{
			name:     "extra key on one side",
			a:        map[string]any{"x": 1.0},
			b:        map[string]any{"x": 1.0, "y": 2.0},
			expected: false,
		},
		{
			name:     "key with nil value is not a missing key",
			a:        map[string]any{"x": nil},
			b:        map[string]any{},
			expected: false,
		},
		{
			name: "deeply nested equal",
			a: map[string]any{
				"settings": map[string]any{
					"firewall": map[string]any{"enabled": true, "rules": []any{"deny-all"}},
				},
			},
			b: map[string]any{
				"settings": map[string]any{
					"firewall": map[string]any{"enabled": true, "rules": []any{"deny-all"}},
				},
			},
			expected: true,
		},
		{
			name: "deeply nested difference",
			a: map[string]any{
				"settings": map[string]any{"firewall": map[string]any{"enabled": true}},
			},
			b: map[string]any{
				"settings": map[string]any{"firewall": map[string]any{"enabled": false}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
		})
	}
}

func TestEqual_Reflexive(t *testing.T) {
	values := []any{
		nil,
		"name",
		42.0,
		true,
		[]any{"a", map[string]any{"k": "v"}},
		map[string]any{"nested": map[string]any{"list": []any{1.0, 2.0}}},
	}

	for _, v := range values {
		assert.True(t, Equal(v, v))
	}
}

func TestEqual_Symmetric(t *testing.T) {
	pairs := [][2]any{
		{"a", "b"},
		{nil, "a"},
		{map[string]any{"x": 1.0}, map[string]any{"x": 2.0}},
		{[]any{1.0}, []any{1.0}},
	}

	for _, p := range pairs {
		assert.Equal(t, Equal(p[0], p[1]), Equal(p[1], p[0]))
	}
}

func TestEqual_DepthBound(t *testing.T) {
	// Build nesting deeper than the recursion bound; comparison must
	// terminate rather than recurse indefinitely.
	build := func() any {
		var v any = "leaf"
		for i := 0; i < maxDepth+10; i++ {
			v = map[string]any{"child": v}
		}
		return v
	}

	assert.False(t, Equal(build(), build()))
}
