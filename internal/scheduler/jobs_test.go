package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackup struct {
	key string
	err error
	ran int
}

func (s *stubBackup) Run(context.Context) (string, error) {
	s.ran++
	return s.key, s.err
}

type stubPurger struct {
	purged int64
	err    error
}

func (s *stubPurger) PurgeExpired() (int64, error) { return s.purged, s.err }

func TestBackupJob_Run(t *testing.T) {
	backup := &stubBackup{key: "journal-backup-2024-05-10-030000.tar.gz"}
	job := NewBackupJob(backup, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Equal(t, 1, backup.ran)
	assert.Equal(t, "backup", job.Name())
}

func TestBackupJob_PropagatesFailure(t *testing.T) {
	job := NewBackupJob(&stubBackup{err: errors.New("upload refused")}, zerolog.Nop())
	assert.Error(t, job.Run())
}

func TestCacheCleanupJob_Run(t *testing.T) {
	job := NewCacheCleanupJob(&stubPurger{purged: 7}, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Equal(t, "cache-cleanup", job.Name())
}

func TestCacheCleanupJob_PropagatesFailure(t *testing.T) {
	job := NewCacheCleanupJob(&stubPurger{err: errors.New("db locked")}, zerolog.Nop())
	assert.Error(t, job.Run())
}
