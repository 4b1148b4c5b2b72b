package services

import (
	"context"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
	"github.com/custodia-labs/policyctl/internal/diff"
	"github.com/custodia-labs/policyctl/internal/logger"
)

// Ensure CompareService implements the interface.
var _ driving.CompareService = (*CompareService)(nil)

// CompareService reconciles two policy collections type by type.
type CompareService struct{}

// NewCompareService creates a new compare service.
func NewCompareService() *CompareService {
	return &CompareService{}
}

// Compare classifies every document in current against baseline. Types are
// processed sequentially in canonical order; the progress callback fires
// once per policy type with that type's label.
func (s *CompareService) Compare(
	ctx context.Context,
	current, baseline map[domain.PolicyType][]domain.PolicyDocument,
	progress domain.ProgressFunc,
) (*domain.ComparisonReport, error) {
	types := typesPresent(current, baseline)
	if len(types) == 0 {
		return nil, domain.ErrEmptySelection
	}

	report := domain.NewComparisonReport()
	for i, t := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := diff.Reconcile(t, current[t], baseline[t])
		report.Add(t, result)

		added, removed, modified, unchanged := result.Counts()
		logger.Debug("compare: %s - %d added, %d removed, %d modified, %d unchanged",
			t, added, removed, modified, unchanged)

		if progress != nil {
			progress(i+1, len(types), t.Label())
		}
	}

	return report, nil
}

// typesPresent returns the policy types with documents on either side,
// in canonical order.
func typesPresent(current, baseline map[domain.PolicyType][]domain.PolicyDocument) []domain.PolicyType {
	var types []domain.PolicyType
	for _, t := range domain.AllPolicyTypes() {
		if len(current[t]) > 0 || len(baseline[t]) > 0 {
			types = append(types, t)
		}
	}
	return types
}
