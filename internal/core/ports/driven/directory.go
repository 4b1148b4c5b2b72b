// Package driven defines the ports the core services call out through.
package driven

import (
	"context"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// DirectoryClient is the engine's only boundary: the device-management
// API that stores policy documents. Each policy type maps to a distinct
// resource path on the external system; that mapping lives in the
// adapter, not in engine logic.
type DirectoryClient interface {
	// List returns every document of the given policy type.
	List(ctx context.Context, t domain.PolicyType) ([]domain.PolicyDocument, error)

	// Get returns one document by identifier.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, t domain.PolicyType, id string) (domain.PolicyDocument, error)

	// Create stores a new document and returns it with the identifier
	// assigned by the directory service.
	Create(ctx context.Context, t domain.PolicyType, doc domain.PolicyDocument) (domain.PolicyDocument, error)

	// Patch applies a partial document to an existing identifier.
	Patch(ctx context.Context, t domain.PolicyType, id string, doc domain.PolicyDocument) error

	// Delete removes a document.
	Delete(ctx context.Context, t domain.PolicyType, id string) error

	// ListAssignments returns the assignments attached to a document.
	ListAssignments(ctx context.Context, t domain.PolicyType, id string) ([]domain.AssignmentTarget, error)

	// CreateAssignment attaches one assignment to a document.
	CreateAssignment(ctx context.Context, t domain.PolicyType, id string, a domain.AssignmentTarget) error

	// DeleteAssignment removes one assignment from a document.
	DeleteAssignment(ctx context.Context, t domain.PolicyType, id, assignmentID string) error
}

// TokenProvider supplies a bearer token for directory requests.
type TokenProvider interface {
	// GetToken returns a valid access token, refreshing if necessary.
	GetToken(ctx context.Context) (string, error)
}

// RunStore persists import and clone run history.
type RunStore interface {
	// SaveRun stores a completed run with its per-document outcomes.
	SaveRun(ctx context.Context, run *domain.ImportRun) error

	// ListRuns returns stored runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.ImportRun, error)

	// GetRun returns one run with its outcomes.
	// Returns domain.ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, id string) (*domain.ImportRun, error)
}
