// Package di provides dependency injection type definitions.
//
// The Container is the single source of truth for all service instances and
// is passed to the server for access to services.
package di

import (
	"github.com/jstrader/tradejournal/internal/database"
	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/events"
	"github.com/jstrader/tradejournal/internal/modules/journal"
	"github.com/jstrader/tradejournal/internal/modules/profile"
	"github.com/jstrader/tradejournal/internal/reliability"
	"github.com/jstrader/tradejournal/internal/scheduler"
)

// Container holds all dependencies for the application.
type Container struct {
	// Databases. journal.db holds the durable documents, cache.db the
	// rebuildable month snapshots.
	JournalDB *database.DB
	CacheDB   *database.DB

	// Repositories.
	EntryRepo   *journal.EntryRepository
	ProfileRepo *profile.Repository
	MonthCache  *journal.MonthCache

	// Clients.
	TokenVerifier domain.TokenVerifier

	// Services.
	EventBus       *events.Bus
	JournalService *journal.Service
	BackupService  *reliability.BackupService // nil when backups are disabled
}

// JobInstances holds the background jobs for scheduler registration.
type JobInstances struct {
	Backup       *scheduler.BackupJob // nil when backups are disabled
	CacheCleanup *scheduler.CacheCleanupJob
}

// Close releases the container's database connections.
func (c *Container) Close() {
	if c.CacheDB != nil {
		c.CacheDB.Close()
	}
	if c.JournalDB != nil {
		c.JournalDB.Close()
	}
}
