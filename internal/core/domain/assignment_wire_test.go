package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	raw := []any{
		map[string]any{
			"id":     "a1",
			"intent": "required",
			"target": map[string]any{
				"@odata.type": "#microsoft.graph.groupAssignmentTarget",
				"groupId":     "g-123",
			},
		},
		map[string]any{
			"id": "a2",
			"target": map[string]any{
				"@odata.type": "#microsoft.graph.allLicensedUsersAssignmentTarget",
			},
		},
		map[string]any{
			"id": "a3",
			"target": map[string]any{
				"@odata.type": "#microsoft.graph.userAssignmentTarget",
				"userId":      "u-456",
			},
		},
	}

	assignments := ParseAssignments(raw)

	require.Len(t, assignments, 3)
	assert.Equal(t, AssignmentTarget{ID: "a1", Scope: ScopeGroup, TargetID: "g-123", Intent: "required"}, assignments[0])
	assert.Equal(t, AssignmentTarget{ID: "a2", Scope: ScopeAllUsers}, assignments[1])
	assert.Equal(t, AssignmentTarget{ID: "a3", Scope: ScopeUser, TargetID: "u-456"}, assignments[2])
}

func TestParseAssignments_MalformedEntriesDropped(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "not a list", raw: "assignments"},
		{name: "entry without target", raw: []any{map[string]any{"id": "a1"}}},
		{name: "unknown target type", raw: []any{map[string]any{
			"target": map[string]any{"@odata.type": "#microsoft.graph.somethingElse"},
		}}},
		{name: "non-object entry", raw: []any{"bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ParseAssignments(tt.raw))
		})
	}
}

func TestAssignmentTarget_Wire(t *testing.T) {
	tests := []struct {
		name       string
		assignment AssignmentTarget
		expected   map[string]any
	}{
		{
			name:       "group target",
			assignment: AssignmentTarget{Scope: ScopeGroup, TargetID: "g-1"},
			expected: map[string]any{
				"target": map[string]any{
					"@odata.type": "#microsoft.graph.groupAssignmentTarget",
					"groupId":     "g-1",
				},
			},
		},
		{
			name:       "exclusion group target",
			assignment: AssignmentTarget{Scope: ScopeExclusionGroup, TargetID: "g-2"},
			expected: map[string]any{
				"target": map[string]any{
					"@odata.type": "#microsoft.graph.exclusionGroupAssignmentTarget",
					"groupId":     "g-2",
				},
			},
		},
		{
			name:       "all devices target",
			assignment: AssignmentTarget{Scope: ScopeAllDevices},
			expected: map[string]any{
				"target": map[string]any{
					"@odata.type": "#microsoft.graph.allDevicesAssignmentTarget",
				},
			},
		},
		{
			name:       "app intent included",
			assignment: AssignmentTarget{Scope: ScopeAllUsers, Intent: "available"},
			expected: map[string]any{
				"intent": "available",
				"target": map[string]any{
					"@odata.type": "#microsoft.graph.allLicensedUsersAssignmentTarget",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.assignment.Wire())
		})
	}
}

func TestAssignmentWire_RoundTrip(t *testing.T) {
	original := AssignmentTarget{Scope: ScopeGroup, TargetID: "g-9", Intent: "required"}

	parsed := ParseAssignments([]any{original.Wire()})

	require.Len(t, parsed, 1)
	// The assignment ID is omitted on the wire; everything else survives.
	assert.Equal(t, original.Scope, parsed[0].Scope)
	assert.Equal(t, original.TargetID, parsed[0].TargetID)
	assert.Equal(t, original.Intent, parsed[0].Intent)
}

func TestAssignmentScope_IsUniversal(t *testing.T) {
	assert.True(t, ScopeAllUsers.IsUniversal())
	assert.True(t, ScopeAllDevices.IsUniversal())
	assert.False(t, ScopeGroup.IsUniversal())
	assert.False(t, ScopeExclusionGroup.IsUniversal())
	assert.False(t, ScopeUser.IsUniversal())
}
