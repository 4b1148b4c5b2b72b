package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/storage/backupfile"
	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
	"github.com/custodia-labs/policyctl/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import [backup-file]",
	Short: "Import backed-up policies into the tenant",
	Long: `Import policies from a backup file into the configured tenant.

The --mode flag selects what happens when an imported policy's name
collides with an existing policy:

  always   create a new policy regardless (default)
  skip     leave the existing policy alone
  replace  delete the existing policy, then create a new one
  update   patch the existing policy in place, replacing its assignments

Assignments embedded in the backup are applied after each policy is
created. When migrating between tenants, supply --mapping with a JSON
file of group/user ID translations; assignments whose target has no
mapping are dropped.

Examples:
  policyctl import backup.json --mode skip
  policyctl import backup.json --mode replace --type deviceCompliancePolicy
  policyctl import backup.json --mapping mapping.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// Flags for import.
var (
	importMode            string
	importTypes           []string
	importMappingPath     string
	importSkipAssignments bool
)

func init() {
	importCmd.Flags().StringVarP(&importMode, "mode", "m", "always",
		"Conflict resolution mode: always, skip, replace, or update")
	importCmd.Flags().StringArrayVarP(&importTypes, "type", "t", nil,
		"Limit to a policy type (can be repeated)")
	importCmd.Flags().StringVar(&importMappingPath, "mapping", "",
		"JSON file with group/user identity mappings for assignment migration")
	importCmd.Flags().BoolVar(&importSkipAssignments, "skip-assignments", false,
		"Do not apply assignments")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return domain.ErrNotConfigured
	}

	mode, err := domain.ParseImportMode(importMode)
	if err != nil {
		return fmt.Errorf("%w: %q", err, importMode)
	}

	types, err := parseTypeFlags(importTypes)
	if err != nil {
		return err
	}

	mapping, err := loadMapping(importMappingPath)
	if err != nil {
		return err
	}

	backup, err := backupfile.Read(args[0])
	if err != nil {
		return err
	}

	run, err := importService.Import(cmd.Context(), backup, driving.ImportOptions{
		Mode:            mode,
		Types:           types,
		Mapping:         mapping,
		SkipAssignments: importSkipAssignments,
		Progress:        progressPrinter(cmd),
	})
	if err != nil {
		return err
	}

	saveRun(cmd, run)
	renderRun(cmd, run)
	return nil
}

// loadMapping reads an identity-mapping file. An empty path yields an
// empty mapping.
func loadMapping(path string) (domain.IdentityMapping, error) {
	var mapping domain.IdentityMapping
	if path == "" {
		return mapping, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mapping, fmt.Errorf("read mapping file: %w", err)
	}
	if err := json.Unmarshal(data, &mapping); err != nil {
		return mapping, fmt.Errorf("parse mapping file: %w", err)
	}
	return mapping, nil
}

// saveRun records the run in history. History failures are logged, not
// fatal; the run itself already happened.
func saveRun(cmd *cobra.Command, run *domain.ImportRun) {
	if runStore == nil {
		return
	}
	if err := runStore.SaveRun(cmd.Context(), run); err != nil {
		logger.Warn("history: saving run %s failed: %v", run.ID, err)
	}
}
