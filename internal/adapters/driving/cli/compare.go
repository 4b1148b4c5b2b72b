package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/storage/backupfile"
	"github.com/custodia-labs/policyctl/internal/core/domain"
)

var compareCmd = &cobra.Command{
	Use:   "compare [current-backup] [baseline-backup]",
	Short: "Compare policy collections",
	Long: `Compare two policy collections and classify every policy as added,
removed, modified, or unchanged.

With two arguments both sides are backup files. With one argument the
live tenant is compared against the backup.

Examples:
  # Live tenant vs a backup
  policyctl compare backup.json

  # Two backups against each other
  policyctl compare current.json baseline.json

  # Limit to specific policy types
  policyctl compare backup.json --type deviceCompliancePolicy`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompare,
}

// Flags for compare.
var (
	compareTypes        []string
	compareShowUnchanged bool
)

func init() {
	compareCmd.Flags().StringArrayVarP(&compareTypes, "type", "t", nil,
		"Limit to a policy type (can be repeated)")
	compareCmd.Flags().BoolVar(&compareShowUnchanged, "show-unchanged", false,
		"List unchanged policies as well")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareService == nil {
		return errors.New("compare service not configured")
	}

	types, err := parseTypeFlags(compareTypes)
	if err != nil {
		return err
	}

	var current map[domain.PolicyType][]domain.PolicyDocument
	if len(args) == 2 {
		backup, err := backupfile.Read(args[0])
		if err != nil {
			return err
		}
		current = backup.Policies
	} else {
		if backupService == nil {
			return domain.ErrNotConfigured
		}
		live, err := backupService.Export(cmd.Context(), types, nil)
		if err != nil {
			return err
		}
		current = live.Policies
	}

	baselinePath := args[len(args)-1]
	baseline, err := backupfile.Read(baselinePath)
	if err != nil {
		return err
	}

	report, err := compareService.Compare(cmd.Context(),
		filterTypes(current, types), filterTypes(baseline.Policies, types), nil)
	if err != nil {
		return err
	}

	renderReport(cmd, report, compareShowUnchanged)
	return nil
}

// parseTypeFlags converts --type values to policy types.
func parseTypeFlags(values []string) ([]domain.PolicyType, error) {
	var types []domain.PolicyType
	for _, v := range values {
		t, err := domain.ParsePolicyType(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, v)
		}
		types = append(types, t)
	}
	return types, nil
}

// filterTypes restricts a collection map to the requested types. An empty
// filter keeps everything.
func filterTypes(
	policies map[domain.PolicyType][]domain.PolicyDocument, types []domain.PolicyType,
) map[domain.PolicyType][]domain.PolicyDocument {
	if len(types) == 0 {
		return policies
	}
	out := make(map[domain.PolicyType][]domain.PolicyDocument, len(types))
	for _, t := range types {
		if docs, ok := policies[t]; ok {
			out[t] = docs
		}
	}
	return out
}
