package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

func TestExport_DefaultsToAllTypes(t *testing.T) {
	fake := newFakeDirectory()
	fake.seed(domain.PolicyCompliance, policy("A", nil))
	svc := NewBackupService(fake, "tenant-1")

	backup, err := svc.Export(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "tenant-1", backup.TenantID)
	assert.False(t, backup.ExportDate.IsZero())
	assert.Len(t, fake.calls, len(domain.AllPolicyTypes()))
	assert.Equal(t, 1, backup.Count())
}

func TestExport_RequestedTypesOnly(t *testing.T) {
	fake := newFakeDirectory()
	fake.seed(domain.PolicyCompliance, policy("A", nil))
	fake.seed(domain.PolicyScript, policy("B", nil))
	svc := NewBackupService(fake, "tenant-1")

	backup, err := svc.Export(context.Background(), []domain.PolicyType{domain.PolicyScript}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"list:deviceManagementScript"}, fake.calls)
	require.Len(t, backup.Policies, 1)
	assert.Equal(t, "B", backup.Policies[domain.PolicyScript][0].DisplayName())
}

func TestExport_FailedTypeOmitted(t *testing.T) {
	fake := newFakeDirectory()
	fake.listErr = errors.New("503 unavailable")
	svc := NewBackupService(fake, "tenant-1")

	backup, err := svc.Export(context.Background(), []domain.PolicyType{domain.PolicyCompliance}, nil)

	require.NoError(t, err)
	assert.Empty(t, backup.Policies)
}

func TestExport_EmptyCollectionsNotStored(t *testing.T) {
	fake := newFakeDirectory()
	svc := NewBackupService(fake, "tenant-1")

	backup, err := svc.Export(context.Background(), []domain.PolicyType{domain.PolicyCompliance}, nil)

	require.NoError(t, err)
	assert.NotContains(t, backup.Policies, domain.PolicyCompliance)
}
