package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/storage/backupfile"
	"github.com/custodia-labs/policyctl/internal/core/domain"
)

var backupCmd = &cobra.Command{
	Use:   "backup [output-file]",
	Short: "Export tenant policies to a backup file",
	Long: `Export every supported policy type from the configured tenant into a
JSON backup file. The file is the input format for 'policyctl compare'
and 'policyctl import'.

With no argument the file is named policyctl-backup-<date>.json.

Examples:
  policyctl backup
  policyctl backup tenant.json --type settingsCatalog --type deviceCompliancePolicy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

// Flags for backup.
var backupTypes []string

func init() {
	backupCmd.Flags().StringArrayVarP(&backupTypes, "type", "t", nil,
		"Limit to a policy type (can be repeated)")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return domain.ErrNotConfigured
	}

	types, err := parseTypeFlags(backupTypes)
	if err != nil {
		return err
	}

	backup, err := backupService.Export(cmd.Context(), types, progressPrinter(cmd))
	if err != nil {
		return err
	}

	path := fmt.Sprintf("policyctl-backup-%s.json", time.Now().Format("2006-01-02"))
	if len(args) == 1 {
		path = args[0]
	}

	if err := backupfile.Write(path, backup); err != nil {
		return err
	}

	cmd.Printf("Exported %d policies across %d types to %s\n",
		backup.Count(), len(backup.Policies), path)
	return nil
}
