package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/config/file"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage tenant credentials",
	Long: `Configure the Microsoft Entra app registration policyctl uses for
Graph access. The app needs application permissions for
DeviceManagementConfiguration and DeviceManagementApps.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set tenant ID, client ID, and client secret",
	Long: `Store the app registration in ~/.policyctl/config.toml. The client
secret is prompted without echo unless --secret is given.

Examples:
  policyctl auth set --tenant 00000000-... --client 11111111-...`,
	RunE: runAuthSet,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured tenant (secret redacted)",
	RunE:  runAuthShow,
}

// Flags for auth set.
var (
	authTenantID     string
	authClientID     string
	authClientSecret string
)

func init() {
	authSetCmd.Flags().StringVar(&authTenantID, "tenant", "", "Tenant (directory) ID")
	authSetCmd.Flags().StringVar(&authClientID, "client", "", "App registration client ID")
	authSetCmd.Flags().StringVar(&authClientSecret, "secret", "",
		"Client secret (prompted without echo if omitted)")
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if authTenantID == "" || authClientID == "" {
		return errors.New("--tenant and --client are required")
	}

	secret := authClientSecret
	if secret == "" {
		cmd.Print("Client secret: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return fmt.Errorf("read secret: %w", err)
		}
		secret = strings.TrimSpace(string(raw))
	}
	if secret == "" {
		return errors.New("client secret must not be empty")
	}

	cfg, err := configStore.Load()
	if err != nil {
		return err
	}
	cfg.Tenant = file.TenantConfig{
		TenantID:     authTenantID,
		ClientID:     authClientID,
		ClientSecret: secret,
	}
	if err := configStore.Save(cfg); err != nil {
		return err
	}

	cmd.Println("Tenant credentials saved. Restart policyctl to use them.")
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg, err := configStore.Load()
	if err != nil {
		return err
	}
	if !cfg.Configured() {
		cmd.Println("No tenant configured. Run 'policyctl auth set'.")
		return nil
	}

	cmd.Printf("Tenant ID: %s\n", cfg.Tenant.TenantID)
	cmd.Printf("Client ID: %s\n", cfg.Tenant.ClientID)
	cmd.Println("Client secret: (set)")
	return nil
}
