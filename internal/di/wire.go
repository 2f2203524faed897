// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/clients/identity"
	"github.com/jstrader/tradejournal/internal/config"
	"github.com/jstrader/tradejournal/internal/events"
	"github.com/jstrader/tradejournal/internal/modules/journal"
	"github.com/jstrader/tradejournal/internal/modules/profile"
	"github.com/jstrader/tradejournal/internal/reliability"
	"github.com/jstrader/tradejournal/internal/scheduler"
)

// Wire initializes all dependencies and returns a fully configured container
// plus the background jobs for scheduler registration.
//
// Order of operations: databases, repositories, clients, services, jobs.
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, *JobInstances, error) {
	container, err := InitializeDatabases(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	// Repositories.
	container.EntryRepo = journal.NewEntryRepository(container.JournalDB.Conn(), log)
	container.ProfileRepo = profile.NewRepository(container.JournalDB.Conn(), log)
	container.MonthCache = journal.NewMonthCache(container.CacheDB.Conn())

	// Clients.
	container.TokenVerifier = identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey, log)

	// Services.
	container.EventBus = events.NewBus(log)
	container.JournalService = journal.NewService(container.EntryRepo, container.MonthCache, container.EventBus, log)

	if cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(cfg.Backup, log)
		if err != nil {
			container.Close()
			return nil, nil, fmt.Errorf("failed to initialize backup storage: %w", err)
		}
		container.BackupService = reliability.NewBackupService(
			s3Client,
			container.JournalDB,
			cfg.DataDir,
			cfg.Backup.RetainCount,
			container.EventBus,
			log,
		)
	}

	// Jobs.
	jobs := &JobInstances{
		CacheCleanup: scheduler.NewCacheCleanupJob(container.MonthCache, log),
	}
	if container.BackupService != nil {
		jobs.Backup = scheduler.NewBackupJob(container.BackupService, log)
	}

	log.Info().Bool("backups", container.BackupService != nil).Msg("Dependency wiring completed")
	return container, jobs, nil
}
