package services

import (
	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/logger"
)

// RemapAssignments rewrites group and user identifiers in assignments
// using the identity mapping. Universal scopes (all users, all devices)
// pass through unchanged. An assignment whose target has no mapping entry
// is dropped and logged, not treated as an error, so the result is never
// longer than the input.
func RemapAssignments(assignments []domain.AssignmentTarget, mapping domain.IdentityMapping) []domain.AssignmentTarget {
	if len(assignments) == 0 {
		return nil
	}

	out := make([]domain.AssignmentTarget, 0, len(assignments))
	for _, a := range assignments {
		if a.Scope.IsUniversal() {
			out = append(out, a)
			continue
		}

		table := mapping.Groups
		if a.Scope == domain.ScopeUser {
			table = mapping.Users
		}

		newID, ok := table[a.TargetID]
		if !ok {
			logger.Debug("remap: dropping assignment with unmapped %s target %s", a.Scope, a.TargetID)
			continue
		}

		remapped := a
		remapped.TargetID = newID
		out = append(out, remapped)
	}
	return out
}
