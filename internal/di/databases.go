package di

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/config"
	"github.com/jstrader/tradejournal/internal/database"
)

// InitializeDatabases opens both databases and applies their schemas.
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	journalDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "journal.db"),
		Profile: database.ProfileStandard,
		Name:    "journal",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize journal database: %w", err)
	}
	container.JournalDB = journalDB

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		journalDB.Close()
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	container.CacheDB = cacheDB

	for _, db := range []*database.DB{journalDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to migrate %s database: %w", db.Name(), err)
		}
	}

	log.Info().
		Str("journal", journalDB.Path()).
		Str("cache", cacheDB.Path()).
		Msg("Databases initialized")
	return container, nil
}
