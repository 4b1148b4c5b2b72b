package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/storage/backupfile"
	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
)

var cloneCmd = &cobra.Command{
	Use:   "clone [policy-type]",
	Short: "Bulk-duplicate policies under transformed names",
	Long: `Clone policies of one type in the configured tenant, deriving each
clone's name from a transformation rule: --prefix, --suffix,
--find/--replace (regular expression), or --pattern with a {name}
placeholder. At least one rule flag is required.

By default every policy of the type is cloned from the live tenant;
--source clones from a backup file instead, and --name limits cloning to
specific policies. Clones whose transformed name already exists are
skipped unless --force is set.

Examples:
  policyctl clone deviceCompliancePolicy --suffix " - Copy"
  policyctl clone settingsCatalog --pattern "PILOT {name}" --name "Baseline Policy"
  policyctl clone deviceConfiguration --find "Prod" --replace "Test" --with-assignments`,
	Args: cobra.ExactArgs(1),
	RunE: runClone,
}

// Flags for clone.
var (
	clonePrefix          string
	cloneSuffix          string
	cloneFind            string
	cloneReplace         string
	clonePattern         string
	cloneNames           []string
	cloneSourcePath      string
	cloneForce           bool
	cloneWithAssignments bool
	cloneMappingPath     string
)

func init() {
	cloneCmd.Flags().StringVar(&clonePrefix, "prefix", "", "Prepend to the policy name")
	cloneCmd.Flags().StringVar(&cloneSuffix, "suffix", "", "Append to the policy name")
	cloneCmd.Flags().StringVar(&cloneFind, "find", "", "Regular expression to replace in the name")
	cloneCmd.Flags().StringVar(&cloneReplace, "replace", "", "Replacement for --find matches")
	cloneCmd.Flags().StringVar(&clonePattern, "pattern", "", "Name template containing {name}")
	cloneCmd.Flags().StringArrayVar(&cloneNames, "name", nil,
		"Only clone the named policies (can be repeated)")
	cloneCmd.Flags().StringVar(&cloneSourcePath, "source", "",
		"Clone from a backup file instead of the live tenant")
	cloneCmd.Flags().BoolVar(&cloneForce, "force", false,
		"Skip the duplicate-name check")
	cloneCmd.Flags().BoolVar(&cloneWithAssignments, "with-assignments", false,
		"Copy assignments onto each clone")
	cloneCmd.Flags().StringVar(&cloneMappingPath, "mapping", "",
		"JSON file with group/user identity mappings for assignment migration")
	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) error {
	if cloneService == nil {
		return domain.ErrNotConfigured
	}

	policyType, err := domain.ParsePolicyType(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}

	rule := domain.TransformRule{
		Prefix:  clonePrefix,
		Suffix:  cloneSuffix,
		Find:    cloneFind,
		Replace: cloneReplace,
		Pattern: clonePattern,
	}
	if err := rule.Validate(); err != nil {
		return err
	}

	mapping, err := loadMapping(cloneMappingPath)
	if err != nil {
		return err
	}

	sources, err := cloneSources(cmd, policyType)
	if err != nil {
		return err
	}
	sources, err = filterNames(sources, cloneNames)
	if err != nil {
		return err
	}

	run, err := cloneService.Clone(cmd.Context(), policyType, sources, driving.CloneOptions{
		Rule:               rule,
		SkipDuplicateCheck: cloneForce,
		CloneAssignments:   cloneWithAssignments,
		Mapping:            mapping,
		Progress:           progressPrinter(cmd),
	})
	if err != nil {
		return err
	}

	saveRun(cmd, run)
	renderRun(cmd, run)
	return nil
}

// cloneSources loads the documents to clone, from a backup file or the
// live tenant.
func cloneSources(cmd *cobra.Command, t domain.PolicyType) ([]domain.PolicyDocument, error) {
	if cloneSourcePath != "" {
		backup, err := backupfile.Read(cloneSourcePath)
		if err != nil {
			return nil, err
		}
		return backup.Policies[t], nil
	}

	if backupService == nil {
		return nil, domain.ErrNotConfigured
	}
	live, err := backupService.Export(cmd.Context(), []domain.PolicyType{t}, nil)
	if err != nil {
		return nil, err
	}
	return live.Policies[t], nil
}

// filterNames restricts sources to the named policies. Requested names
// with no matching policy are an error so typos surface before any
// clone is created.
func filterNames(docs []domain.PolicyDocument, names []string) ([]domain.PolicyDocument, error) {
	if len(names) == 0 {
		return docs, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = false
	}

	var out []domain.PolicyDocument
	for _, doc := range docs {
		if _, ok := wanted[doc.DisplayName()]; ok {
			wanted[doc.DisplayName()] = true
			out = append(out, doc)
		}
	}

	var missing []string
	for n, found := range wanted {
		if !found {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no policy named %s", domain.ErrEmptySelection,
			strings.Join(missing, ", "))
	}
	return out, nil
}
