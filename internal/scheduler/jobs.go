package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// BackupRunner is the slice of the backup service the nightly job needs.
type BackupRunner interface {
	Run(ctx context.Context) (string, error)
}

// CachePurger is the slice of the month cache the cleanup job needs.
type CachePurger interface {
	PurgeExpired() (int64, error)
}

// BackupJob runs the nightly database backup.
type BackupJob struct {
	backup BackupRunner
	log    zerolog.Logger
}

// NewBackupJob creates the nightly backup job.
func NewBackupJob(backup BackupRunner, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		backup: backup,
		log:    log.With().Str("job", "backup").Logger(),
	}
}

// Name implements Job.
func (j *BackupJob) Name() string { return "backup" }

// Run implements Job. The timeout bounds a wedged upload so the next night's
// run is not blocked behind it.
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	key, err := j.backup.Run(ctx)
	if err != nil {
		return err
	}
	j.log.Info().Str("key", key).Msg("Nightly backup uploaded")
	return nil
}

// CacheCleanupJob purges expired month snapshots.
type CacheCleanupJob struct {
	cache CachePurger
	log   zerolog.Logger
}

// NewCacheCleanupJob creates the cache cleanup job.
func NewCacheCleanupJob(cache CachePurger, log zerolog.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cache: cache,
		log:   log.With().Str("job", "cache-cleanup").Logger(),
	}
}

// Name implements Job.
func (j *CacheCleanupJob) Name() string { return "cache-cleanup" }

// Run implements Job.
func (j *CacheCleanupJob) Run() error {
	purged, err := j.cache.PurgeExpired()
	if err != nil {
		return err
	}
	if purged > 0 {
		j.log.Debug().Int64("purged", purged).Msg("Expired month snapshots removed")
	}
	return nil
}
