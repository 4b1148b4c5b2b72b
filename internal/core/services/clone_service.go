package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
	"github.com/custodia-labs/policyctl/internal/diff"
	"github.com/custodia-labs/policyctl/internal/logger"
)

// Ensure CloneService implements the interface.
var _ driving.CloneService = (*CloneService)(nil)

// CloneService bulk-duplicates policies under transformed display names.
type CloneService struct {
	client driven.DirectoryClient
}

// NewCloneService creates a clone service against the given tenant.
func NewCloneService(client driven.DirectoryClient) *CloneService {
	return &CloneService{client: client}
}

// Clone duplicates each source document under its transformed name. The
// rule is validated before any external call; collisions on the
// transformed name are skipped unless duplicate checking is disabled.
func (s *CloneService) Clone(
	ctx context.Context,
	policyType domain.PolicyType,
	sources []domain.PolicyDocument,
	opts driving.CloneOptions,
) (*domain.ImportRun, error) {
	if err := opts.Rule.Validate(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, domain.ErrEmptySelection
	}

	run := &domain.ImportRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger.Info("clone: run %s starting - %d %s", run.ID, len(sources), policyType.Label())

	targetIdx := s.targetIndex(ctx, policyType, opts)

	for i, doc := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		run.Record(s.cloneOne(ctx, policyType, doc, targetIdx, opts))

		if opts.Progress != nil {
			opts.Progress(i+1, len(sources), doc.DisplayName())
		}
	}

	run.EndedAt = time.Now().UTC()
	logger.Info("clone: run %s finished - %d cloned, %d skipped, %d failed",
		run.ID, run.Imported, run.Skipped, run.Failed)
	return run, nil
}

// targetIndex fetches the live collection for collision checks. A failed
// lookup is treated as an empty target so cloning proceeds.
func (s *CloneService) targetIndex(
	ctx context.Context, t domain.PolicyType, opts driving.CloneOptions,
) *diff.Index {
	if opts.SkipDuplicateCheck {
		return nil
	}

	existing, err := s.client.List(ctx, t)
	if err != nil {
		logger.Warn("clone: listing %s in target failed, treating as empty: %v", t, err)
		return diff.NewIndex(nil, false)
	}
	return diff.NewIndex(existing, false)
}

// cloneOne duplicates a single document.
func (s *CloneService) cloneOne(
	ctx context.Context,
	t domain.PolicyType,
	doc domain.PolicyDocument,
	targetIdx *diff.Index,
	opts driving.CloneOptions,
) domain.ImportOutcome {
	name := doc.DisplayName()
	outcome := domain.ImportOutcome{Name: name, Type: t}

	if !t.Cloneable() {
		outcome.Action = domain.ActionSkipped
		outcome.Reason = "type does not support cloning"
		return outcome
	}
	if name == "" {
		outcome.Action = domain.ActionSkipped
		outcome.Reason = "missing display name"
		return outcome
	}

	newName, err := opts.Rule.Apply(name)
	if err != nil {
		outcome.Action = domain.ActionFailed
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Name = newName

	if targetIdx != nil {
		if _, exists := targetIdx.LookupName(newName); exists {
			outcome.Action = domain.ActionSkipped
			outcome.Reason = "name already exists"
			return outcome
		}
	}

	clone := doc.Clean().SetDisplayName(newName)
	created, err := s.client.Create(ctx, t, clone)
	if err != nil {
		outcome.Action = domain.ActionFailed
		outcome.Error = err.Error()
		return outcome
	}
	if targetIdx != nil {
		targetIdx.Add(created)
	}

	outcome.Action = domain.ActionImported
	s.cloneAssignments(ctx, t, created.ID(), doc, opts)
	return outcome
}

// cloneAssignments copies the source document's assignments onto the
// clone, remapped when a mapping is supplied. Best-effort, like import.
func (s *CloneService) cloneAssignments(
	ctx context.Context,
	t domain.PolicyType,
	id string,
	source domain.PolicyDocument,
	opts driving.CloneOptions,
) {
	if !opts.CloneAssignments || !t.SupportsAssignments() {
		return
	}

	assignments := source.EmbeddedAssignments()
	if len(assignments) == 0 {
		var err error
		assignments, err = s.client.ListAssignments(ctx, t, source.ID())
		if err != nil {
			logger.Warn("clone: listing assignments on %q failed: %v", source.DisplayName(), err)
			return
		}
	}

	if !opts.Mapping.IsEmpty() {
		assignments = RemapAssignments(assignments, opts.Mapping)
	}

	for _, a := range assignments {
		if err := s.client.CreateAssignment(ctx, t, id, a); err != nil {
			logger.Warn("clone: assigning %s on %q failed: %v", a.Scope, source.DisplayName(), err)
		}
	}
}
