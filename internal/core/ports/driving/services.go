// Package driving defines the service interfaces the CLI drives.
package driving

import (
	"context"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// CompareService reconciles two policy collections.
type CompareService interface {
	// Compare classifies every document in current against baseline.
	// Both sides map policy types to their document collections; types
	// present on either side are reconciled.
	Compare(ctx context.Context, current, baseline map[domain.PolicyType][]domain.PolicyDocument,
		progress domain.ProgressFunc) (*domain.ComparisonReport, error)
}

// ImportOptions configures one import run.
type ImportOptions struct {
	// Mode is the conflict-resolution strategy.
	Mode domain.ImportMode
	// Types limits the run to the listed policy types; empty means all
	// types present in the backup.
	Types []domain.PolicyType
	// Mapping remaps group and user identifiers inside assignments.
	Mapping domain.IdentityMapping
	// SkipAssignments disables assignment application entirely.
	SkipAssignments bool
	// Progress is invoked after every processed document.
	Progress domain.ProgressFunc
}

// ImportService writes backed-up policies into a live tenant.
type ImportService interface {
	// Import runs the conflict-resolution state machine over every
	// selected document. Per-document directory failures are recorded in
	// the run, not returned; only input errors abort before any external
	// call.
	Import(ctx context.Context, backup *domain.Backup, opts ImportOptions) (*domain.ImportRun, error)
}

// CloneOptions configures one clone run.
type CloneOptions struct {
	// Rule derives each clone's display name.
	Rule domain.TransformRule
	// SkipDuplicateCheck disables the collision check on transformed names.
	SkipDuplicateCheck bool
	// CloneAssignments copies assignments onto each clone, remapped
	// through Mapping when it is non-empty.
	CloneAssignments bool
	// Mapping remaps group and user identifiers when cloning assignments.
	Mapping domain.IdentityMapping
	// Progress is invoked after every processed document.
	Progress domain.ProgressFunc
}

// CloneService bulk-duplicates policies under transformed names.
type CloneService interface {
	// Clone duplicates each source document in the target tenant under
	// its transformed name. The rule is validated before any external
	// call.
	Clone(ctx context.Context, policyType domain.PolicyType, sources []domain.PolicyDocument,
		opts CloneOptions) (*domain.ImportRun, error)
}

// BackupService exports live tenant policies.
type BackupService interface {
	// Export reads every supported policy type from the tenant and
	// returns the backup container.
	Export(ctx context.Context, types []domain.PolicyType, progress domain.ProgressFunc) (*domain.Backup, error)
}
