package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
	"github.com/custodia-labs/policyctl/internal/diff"
	"github.com/custodia-labs/policyctl/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService writes backed-up policies into a live tenant, resolving
// name collisions according to the selected import mode.
type ImportService struct {
	client driven.DirectoryClient
}

// NewImportService creates an import service against the given tenant.
func NewImportService(client driven.DirectoryClient) *ImportService {
	return &ImportService{client: client}
}

// Import runs the conflict-resolution state machine over every selected
// document, one at a time. Documents are never mutated; cleaned copies are
// sent to the directory service. Per-document failures are recorded and
// the batch continues; only input errors abort before any external call.
func (s *ImportService) Import(
	ctx context.Context, backup *domain.Backup, opts driving.ImportOptions,
) (*domain.ImportRun, error) {
	if err := backup.Validate(); err != nil {
		return nil, err
	}

	types, err := selectTypes(backup, opts.Types)
	if err != nil {
		return nil, err
	}

	run := &domain.ImportRun{
		ID:        uuid.NewString(),
		Mode:      opts.Mode,
		StartedAt: time.Now().UTC(),
	}

	total := 0
	for _, t := range types {
		total += len(backup.Policies[t])
	}
	logger.Info("import: run %s starting - %d policies, mode %s", run.ID, total, opts.Mode)

	processed := 0
	for _, t := range types {
		targetIdx := s.targetIndex(ctx, t, opts.Mode)

		for _, doc := range backup.Policies[t] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			run.Record(s.importOne(ctx, t, doc, targetIdx, opts))

			processed++
			if opts.Progress != nil {
				opts.Progress(processed, total, doc.DisplayName())
			}
		}
	}

	run.EndedAt = time.Now().UTC()
	logger.Info("import: run %s finished - %d imported, %d skipped, %d failed",
		run.ID, run.Imported, run.Skipped, run.Failed)
	return run, nil
}

// targetIndex fetches the live target collection for existence checks.
// ModeAlways never checks existence, so no fetch is made. A failed lookup
// is treated as an empty target rather than propagated, so the run
// prefers creating over failing every document outright.
func (s *ImportService) targetIndex(
	ctx context.Context, t domain.PolicyType, mode domain.ImportMode,
) *diff.Index {
	if mode == domain.ModeAlways {
		return nil
	}

	existing, err := s.client.List(ctx, t)
	if err != nil {
		logger.Warn("import: listing %s in target failed, treating as empty: %v", t, err)
		return diff.NewIndex(nil, t.RequiresTypeMatch())
	}
	return diff.NewIndex(existing, t.RequiresTypeMatch())
}

// importOne applies the conflict-resolution state machine to one document.
func (s *ImportService) importOne(
	ctx context.Context,
	t domain.PolicyType,
	doc domain.PolicyDocument,
	targetIdx *diff.Index,
	opts driving.ImportOptions,
) domain.ImportOutcome {
	name := doc.DisplayName()
	outcome := domain.ImportOutcome{Name: name, Type: t}

	if name == "" {
		outcome.Action = domain.ActionSkipped
		outcome.Reason = "missing display name"
		return outcome
	}

	var existing domain.PolicyDocument
	if targetIdx != nil {
		existing, _ = targetIdx.Lookup(doc)
	}

	switch opts.Mode {
	case domain.ModeSkip:
		if existing != nil {
			outcome.Action = domain.ActionSkipped
			outcome.Reason = "already exists"
			return outcome
		}

	case domain.ModeReplace:
		if existing != nil {
			logger.Debug("import: replacing %s %q (deleting %s)", t, name, existing.ID())
			if err := s.client.Delete(ctx, t, existing.ID()); err != nil {
				outcome.Action = domain.ActionFailed
				outcome.Error = fmt.Sprintf("delete existing: %v", err)
				return outcome
			}
		}

	case domain.ModeUpdate:
		if existing != nil {
			return s.updateExisting(ctx, t, doc, existing, opts, outcome)
		}

	case domain.ModeAlways:
		// No existence check.
	}

	created, err := s.client.Create(ctx, t, doc.Clean())
	if err != nil {
		outcome.Action = domain.ActionFailed
		outcome.Error = err.Error()
		return outcome
	}
	if targetIdx != nil {
		targetIdx.Add(created)
	}

	outcome.Action = domain.ActionImported
	s.applyAssignments(ctx, t, created.ID(), doc, opts)
	return outcome
}

// updateExisting patches the source payload onto the existing identifier
// and replaces its assignments wholesale.
func (s *ImportService) updateExisting(
	ctx context.Context,
	t domain.PolicyType,
	doc, existing domain.PolicyDocument,
	opts driving.ImportOptions,
	outcome domain.ImportOutcome,
) domain.ImportOutcome {
	id := existing.ID()
	logger.Debug("import: updating %s %q in place (%s)", t, outcome.Name, id)

	if err := s.client.Patch(ctx, t, id, doc.Clean()); err != nil {
		outcome.Action = domain.ActionFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Action = domain.ActionImported
	if !opts.SkipAssignments {
		s.clearAssignments(ctx, t, id)
	}
	s.applyAssignments(ctx, t, id, doc, opts)
	return outcome
}

// clearAssignments removes every assignment currently on the document.
// Update mode replaces assignments wholesale rather than diffing them.
func (s *ImportService) clearAssignments(ctx context.Context, t domain.PolicyType, id string) {
	if !t.SupportsAssignments() {
		return
	}

	existing, err := s.client.ListAssignments(ctx, t, id)
	if err != nil {
		logger.Warn("import: listing assignments on %s failed: %v", id, err)
		return
	}
	for _, a := range existing {
		if err := s.client.DeleteAssignment(ctx, t, id, a.ID); err != nil {
			logger.Warn("import: deleting assignment %s on %s failed: %v", a.ID, id, err)
		}
	}
}

// applyAssignments remaps and applies the source document's embedded
// assignments. The step is best-effort: failures are logged and do not
// change the owning document's outcome, which can leave a policy imported
// but unassigned.
func (s *ImportService) applyAssignments(
	ctx context.Context,
	t domain.PolicyType,
	id string,
	source domain.PolicyDocument,
	opts driving.ImportOptions,
) {
	if opts.SkipAssignments || !t.SupportsAssignments() {
		return
	}

	assignments := source.EmbeddedAssignments()
	if len(assignments) == 0 {
		return
	}

	if !opts.Mapping.IsEmpty() {
		assignments = RemapAssignments(assignments, opts.Mapping)
	}

	for _, a := range assignments {
		if err := s.client.CreateAssignment(ctx, t, id, a); err != nil {
			logger.Warn("import: assigning %s on %s %q failed: %v", a.Scope, t, source.DisplayName(), err)
		}
	}
}

// selectTypes filters the backup's policy types to the requested set.
func selectTypes(backup *domain.Backup, requested []domain.PolicyType) ([]domain.PolicyType, error) {
	present := backup.Types()
	if len(requested) == 0 {
		if len(present) == 0 {
			return nil, domain.ErrEmptySelection
		}
		return present, nil
	}

	wanted := make(map[domain.PolicyType]struct{}, len(requested))
	for _, t := range requested {
		wanted[t] = struct{}{}
	}

	var types []domain.PolicyType
	for _, t := range present {
		if _, ok := wanted[t]; ok {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return types, nil
}
