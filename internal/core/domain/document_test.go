package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyDocument_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		doc      PolicyDocument
		expected string
	}{
		{
			name:     "displayName field",
			doc:      PolicyDocument{"displayName": "Baseline"},
			expected: "Baseline",
		},
		{
			name:     "legacy name field",
			doc:      PolicyDocument{"name": "Catalog Entry"},
			expected: "Catalog Entry",
		},
		{
			name:     "displayName wins over name",
			doc:      PolicyDocument{"displayName": "New", "name": "Old"},
			expected: "New",
		},
		{
			name:     "empty displayName falls back to name",
			doc:      PolicyDocument{"displayName": "", "name": "Fallback"},
			expected: "Fallback",
		},
		{
			name:     "no name at all",
			doc:      PolicyDocument{"settings": map[string]any{}},
			expected: "",
		},
		{
			name:     "non-string displayName ignored",
			doc:      PolicyDocument{"displayName": 42.0},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.doc.DisplayName())
		})
	}
}

func TestPolicyDocument_Clean(t *testing.T) {
	doc := PolicyDocument{
		"id":                   "abc",
		"displayName":          "Baseline",
		"createdDateTime":      "2026-01-01T00:00:00Z",
		"lastModifiedDateTime": "2026-02-01T00:00:00Z",
		"version":              4.0,
		"roleScopeTagIds":      []any{"0"},
		"isAssigned":           true,
		"assignments":          []any{},
		"settings":             map[string]any{"x": 1.0},
	}

	cleaned := doc.Clean()

	// No volatile field survives cleaning.
	for field := range cleaned {
		assert.False(t, IsVolatileField(field), "volatile field %q survived Clean", field)
	}
	assert.Equal(t, "Baseline", cleaned.DisplayName())
	assert.Equal(t, map[string]any{"x": 1.0}, cleaned["settings"])

	// The original is untouched.
	assert.Equal(t, "abc", doc.ID())
}

func TestPolicyDocument_SetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		doc      PolicyDocument
		key      string
	}{
		{name: "writes displayName key", doc: PolicyDocument{"displayName": "Old"}, key: "displayName"},
		{name: "writes legacy name key", doc: PolicyDocument{"name": "Old"}, key: "name"},
		{name: "defaults to displayName", doc: PolicyDocument{}, key: "displayName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renamed := tt.doc.SetDisplayName("New")

			assert.Equal(t, "New", renamed[tt.key])
			assert.NotEqual(t, "New", tt.doc[tt.key])
		})
	}
}

func TestPolicyDocument_ID(t *testing.T) {
	assert.Equal(t, "abc", PolicyDocument{"id": "abc"}.ID())
	assert.Equal(t, "", PolicyDocument{}.ID())
}

func TestPolicyDocument_TypeTag(t *testing.T) {
	doc := PolicyDocument{"@odata.type": "#microsoft.graph.windows10GeneralConfiguration"}
	assert.Equal(t, "#microsoft.graph.windows10GeneralConfiguration", doc.TypeTag())
	assert.Equal(t, "", PolicyDocument{}.TypeTag())
}
