package services

import (
	"context"
	"time"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
	"github.com/custodia-labs/policyctl/internal/logger"
)

// Ensure BackupService implements the interface.
var _ driving.BackupService = (*BackupService)(nil)

// BackupService exports live tenant policies into the backup container.
type BackupService struct {
	client driven.DirectoryClient
	// tenantID is stamped into exported containers.
	tenantID string
}

// NewBackupService creates a backup service against the given tenant.
func NewBackupService(client driven.DirectoryClient, tenantID string) *BackupService {
	return &BackupService{client: client, tenantID: tenantID}
}

// Export reads the requested policy types from the tenant. An empty type
// list exports every supported type. A type whose listing fails is logged
// and omitted; the export carries what could be read.
func (s *BackupService) Export(
	ctx context.Context, types []domain.PolicyType, progress domain.ProgressFunc,
) (*domain.Backup, error) {
	if len(types) == 0 {
		types = domain.AllPolicyTypes()
	}

	backup := &domain.Backup{
		ExportDate: time.Now().UTC(),
		TenantID:   s.tenantID,
		Policies:   make(map[domain.PolicyType][]domain.PolicyDocument),
	}

	for i, t := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs, err := s.client.List(ctx, t)
		if err != nil {
			logger.Warn("backup: listing %s failed, omitting from export: %v", t, err)
			continue
		}
		if len(docs) > 0 {
			backup.Policies[t] = docs
		}
		logger.Debug("backup: exported %d %s", len(docs), t)

		if progress != nil {
			progress(i+1, len(types), t.Label())
		}
	}

	return backup, nil
}
