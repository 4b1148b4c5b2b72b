// Package cli implements the policyctl command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
	"github.com/custodia-labs/policyctl/internal/core/ports/driving"
	"github.com/custodia-labs/policyctl/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// Services holds injected service implementations for CLI commands.
	compareService driving.CompareService
	importService  driving.ImportService
	cloneService   driving.CloneService
	backupService  driving.BackupService
	runStore       driven.RunStore
	configStore    *file.ConfigStore
)

// Services holds configuration for CLI commands.
type Services struct {
	Compare     driving.CompareService
	Import      driving.ImportService
	Clone       driving.CloneService
	Backup      driving.BackupService
	RunStore    driven.RunStore
	ConfigStore *file.ConfigStore
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	compareService = s.Compare
	importService = s.Import
	cloneService = s.Clone
	backupService = s.Backup
	runStore = s.RunStore
	configStore = s.ConfigStore
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "policyctl",
	Short: "Back up, compare, import, and clone Intune configuration policies",
	Long: `Policyctl manages Microsoft 365 endpoint-management configuration:
back up policies to JSON files, compare a tenant against a backup (or two
backups against each other), import policies into a tenant with conflict
resolution and cross-tenant assignment remapping, and bulk-clone policies
under transformed names.

Configure tenant credentials first with 'policyctl auth set'.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
