package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
)

func TestClone_RuleValidatedBeforeAnyExternalCall(t *testing.T) {
	fake := newFakeDirectory()
	svc := NewCloneService(fake)

	_, err := svc.Clone(context.Background(), domain.PolicyCompliance,
		[]domain.PolicyDocument{policy("A", nil)},
		driving.CloneOptions{Rule: domain.TransformRule{}})

	assert.ErrorIs(t, err, domain.ErrInvalidRule)
	assert.Empty(t, fake.calls)
}

func TestClone_NoSourcesRejected(t *testing.T) {
	svc := NewCloneService(newFakeDirectory())

	_, err := svc.Clone(context.Background(), domain.PolicyCompliance, nil,
		driving.CloneOptions{Rule: domain.TransformRule{Suffix: " - Copy"}})

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestClone_SuffixRule(t *testing.T) {
	fake := newFakeDirectory()
	svc := NewCloneService(fake)

	run, err := svc.Clone(context.Background(), domain.PolicyCompliance,
		[]domain.PolicyDocument{policy("Baseline Policy", map[string]any{"id": "src-1"})},
		driving.CloneOptions{Rule: domain.TransformRule{Suffix: " - Copy"}})

	require.NoError(t, err)
	assert.Equal(t, 1, run.Imported)
	assert.Equal(t, "Baseline Policy - Copy", run.Outcomes[0].Name)

	created := fake.created(domain.PolicyCompliance)
	require.NotNil(t, created)
	assert.Equal(t, "Baseline Policy - Copy", created.DisplayName())
	assert.NotEqual(t, "src-1", created.ID())
}

func TestClone_CollisionOnTransformedNameSkipped(t *testing.T) {
	fake := newFakeDirectory()
	fake.seed(domain.PolicyCompliance, policy("Baseline - Copy", map[string]any{"id": "existing-1"}))
	svc := NewCloneService(fake)

	run, err := svc.Clone(context.Background(), domain.PolicyCompliance,
		[]domain.PolicyDocument{policy("Baseline", nil)},
		driving.CloneOptions{Rule: domain.TransformRule{Suffix: " - Copy"}})

	require.NoError(t, err)
	assert.Equal(t, 1, run.Skipped)
	assert.Equal(t, "name already exists", run.Outcomes[0].Reason)
	assert.Equal(t, "Baseline - Copy", run.Outcomes[0].Name)
}

func TestClone_ForceSkipsDuplicateCheck(t *testing.T) {
	fake := newFakeDirectory()
	fake.seed(domain.PolicyCompliance, policy("Baseline - Copy", map[string]any{"id": "existing-1"}))
	svc := NewCloneService(fake)

	run, err := svc.Clone(context.Background(), domain.PolicyCompliance,
		[]domain.PolicyDocument{policy("Baseline", nil)},
		driving.CloneOptions{
			Rule:               domain.TransformRule{Suffix: " - Copy"},
			SkipDuplicateCheck: true,
		})

	require.NoError(t, err)
	assert.Equal(t, 1, run.Imported)
	// No list call was made.
	assert.Equal(t, []string{"create:Baseline - Copy"}, fake.calls)
}

func TestClone_EarlierCloneBlocksLaterCollision(t *testing.T) {
	fake := newFakeDirectory()
	svc := NewCloneService(fake)

	// Both sources transform to the same name; the second must be skipped.
	sources := []domain.PolicyDocument{
		policy("Prod Policy", nil),
		policy("Test Policy", nil),
	}

	run, err := svc.Clone(context.Background(), domain.PolicyCompliance, sources,
		driving.CloneOptions{Rule: domain.TransformRule{Find: "Prod|Test", Replace: "Pilot"}})

	require.NoError(t, err)
	assert.Equal(t, 1, run.Imported)
	assert.Equal(t, 1, run.Skipped)
}

func TestClone_NonCloneableTypeSkipped(t *testing.T) {
	fake := newFakeDirectory()
	svc := NewCloneService(fake)

	run, err := svc.Clone(context.Background(), domain.PolicyMobileApp,
		[]domain.PolicyDocument{policy("Company Portal", nil)},
		driving.CloneOptions{Rule: domain.TransformRule{Suffix: " - Copy"}})

	require.NoError(t, err)
	assert.Equal(t, 1, run.Skipped)
	assert.Equal(t, "type does not support cloning", run.Outcomes[0].Reason)
}

func TestClone_CreateFailureContinuesBatch(t *testing.T) {
	fake := newFakeDirectory()
	fake.createErr = errors.New("409 conflict")
	svc := NewCloneService(fake)

	sources := []domain.PolicyDocument{policy("A", nil), policy("B", nil)}
	run, err := svc.Clone(context.Background(), domain.PolicyCompliance, sources,
		driving.CloneOptions{Rule: domain.TransformRule{Suffix: " - Copy"}})

	require.NoError(t, err)
	assert.Equal(t, 2, run.Failed)
}

func TestClone_AssignmentsCopiedFromLiveSource(t *testing.T) {
	fake := newFakeDirectory()
	fake.assignments["src-1"] = []domain.AssignmentTarget{
		{ID: "a1", Scope: domain.ScopeGroup, TargetID: "g-1"},
	}
	svc := NewCloneService(fake)

	_, err := svc.Clone(context.Background(), domain.PolicyCompliance,
		[]domain.PolicyDocument{policy("Baseline", map[string]any{"id": "src-1"})},
		driving.CloneOptions{
			Rule:             domain.TransformRule{Suffix: " - Copy"},
			CloneAssignments: true,
		})

	require.NoError(t, err)
	created := fake.created(domain.PolicyCompliance)
	require.Len(t, fake.assignments[created.ID()], 1)
	assert.Equal(t, "g-1", fake.assignments[created.ID()][0].TargetID)
}

func TestClone_AssignmentsNotCopiedByDefault(t *testing.T) {
	fake := newFakeDirectory()
	fake.assignments["src-1"] = []domain.AssignmentTarget{
		{ID: "a1", Scope: domain.ScopeGroup, TargetID: "g-1"},
	}
	svc := NewCloneService(fake)

	_, err := svc.Clone(context.Background(), domain.PolicyCompliance,
		[]domain.PolicyDocument{policy("Baseline", map[string]any{"id": "src-1"})},
		driving.CloneOptions{Rule: domain.TransformRule{Suffix: " - Copy"}})

	require.NoError(t, err)
	created := fake.created(domain.PolicyCompliance)
	assert.Empty(t, fake.assignments[created.ID()])
}
