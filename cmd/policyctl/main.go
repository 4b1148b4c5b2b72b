package main

import (
	"log"
	"os"

	"github.com/custodia-labs/policyctl/internal/adapters/driven/auth"
	"github.com/custodia-labs/policyctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/policyctl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/policyctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/policyctl/internal/connectors/graph"
	"github.com/custodia-labs/policyctl/internal/core/services"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	configStore, err := file.NewConfigStore("")
	if err != nil {
		log.Printf("failed to create config store: %v", err)
		return 1
	}

	cfg, err := configStore.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	runStore, err := sqlite.NewStore("")
	if err != nil {
		log.Printf("failed to open run history: %v", err)
		return 1
	}
	defer runStore.Close()

	svcs := &cli.Services{
		Compare:     services.NewCompareService(),
		RunStore:    runStore,
		ConfigStore: configStore,
	}

	// Tenant-bound services are only available once credentials exist;
	// 'auth set' and backup-vs-backup compare work without them.
	if cfg.Configured() {
		tokenProvider := auth.NewTokenProvider(
			cfg.Tenant.TenantID, cfg.Tenant.ClientID, cfg.Tenant.ClientSecret)

		var opts []graph.Option
		if cfg.RateLimit.RequestsPerSecond > 0 {
			opts = append(opts, graph.WithRateLimit(graph.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstSize:         cfg.RateLimit.BurstSize,
			}))
		}
		client := graph.NewClient(tokenProvider, opts...)

		svcs.Import = services.NewImportService(client)
		svcs.Clone = services.NewCloneService(client)
		svcs.Backup = services.NewBackupService(client, cfg.Tenant.TenantID)
	}

	cli.SetServices(svcs)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
