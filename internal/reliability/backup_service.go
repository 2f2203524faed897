package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/database"
	"github.com/jstrader/tradejournal/internal/events"
)

const archivePrefix = "journal-backup-"
const archiveTimeLayout = "2006-01-02-150405"

// Backups below this count are never rotated away, whatever their age.
const minBackupsToKeep = 3

// ObjectStore is the consumed interface of the backup object storage.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader) error
	List(ctx context.Context, prefix string) ([]s3types.Object, error)
	Delete(ctx context.Context, key string) error
}

// BackupService snapshots the journal database, archives it with checksum
// metadata and uploads the archive to object storage.
type BackupService struct {
	store       ObjectStore
	journalDB   *database.DB
	dataDir     string
	retainCount int
	bus         *events.Bus
	log         zerolog.Logger
}

// BackupMetadata describes one backup archive.
type BackupMetadata struct {
	Timestamp time.Time          `json:"timestamp"`
	Version   string             `json:"version"`
	Databases []DatabaseMetadata `json:"databases"`
}

// DatabaseMetadata describes a single database file inside the archive.
type DatabaseMetadata struct {
	Name      string `json:"name"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}

// BackupInfo summarizes a stored backup.
type BackupInfo struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"size_bytes"`
}

// NewBackupService creates a new backup service. The bus is optional.
func NewBackupService(store ObjectStore, journalDB *database.DB, dataDir string, retainCount int, bus *events.Bus, log zerolog.Logger) *BackupService {
	return &BackupService{
		store:       store,
		journalDB:   journalDB,
		dataDir:     dataDir,
		retainCount: retainCount,
		bus:         bus,
		log:         log.With().Str("service", "backup").Logger(),
	}
}

// Run creates and uploads one backup, then rotates old archives. Returns the
// uploaded object key. The cache database is deliberately excluded: its
// contents are rebuildable.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	start := time.Now()
	s.log.Info().Msg("Starting backup")

	stagingDir := filepath.Join(s.dataDir, "backup-staging")
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	snapshotPath := filepath.Join(stagingDir, "journal.db")
	if err := s.snapshotDatabase(ctx, snapshotPath); err != nil {
		return "", fmt.Errorf("failed to snapshot journal database: %w", err)
	}

	dbMeta, err := describeFile("journal", snapshotPath)
	if err != nil {
		return "", err
	}

	metadata := BackupMetadata{
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Databases: []DatabaseMetadata{dbMeta},
	}
	metadataPath := filepath.Join(stagingDir, "backup-metadata.json")
	if err := writeMetadata(metadataPath, metadata); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	key := archivePrefix + time.Now().Format(archiveTimeLayout) + ".tar.gz"
	archivePath := filepath.Join(stagingDir, key)
	if err := createArchive(archivePath, []string{snapshotPath, metadataPath}); err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer archiveFile.Close()

	if err := s.store.Upload(ctx, key, archiveFile); err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	if err := s.rotate(ctx); err != nil {
		// Rotation failure does not invalidate the backup itself.
		s.log.Warn().Err(err).Msg("Backup rotation failed")
	}

	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.BackupCompleted, Data: map[string]string{"key": key}})
	}

	s.log.Info().
		Str("key", key).
		Int64("size_bytes", dbMeta.SizeBytes).
		Dur("duration_ms", time.Since(start)).
		Msg("Backup completed")
	return key, nil
}

// ListBackups returns the stored backups, newest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	objects, err := s.store.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := make([]BackupInfo, 0, len(objects))
	for _, obj := range objects {
		if obj.Key == nil {
			continue
		}
		timestamp, ok := parseArchiveKey(*obj.Key)
		if !ok {
			s.log.Warn().Str("key", *obj.Key).Msg("Skipping object with unparseable backup key")
			continue
		}

		var size int64
		if obj.Size != nil {
			size = *obj.Size
		}
		backups = append(backups, BackupInfo{Key: *obj.Key, Timestamp: timestamp, SizeBytes: size})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// rotate deletes the oldest backups beyond the retention count, always
// keeping a minimum regardless of configuration.
func (s *BackupService) rotate(ctx context.Context) error {
	if s.retainCount <= 0 {
		return nil
	}

	keep := s.retainCount
	if keep < minBackupsToKeep {
		keep = minBackupsToKeep
	}

	backups, err := s.ListBackups(ctx)
	if err != nil {
		return err
	}

	for _, backup := range backups[min(keep, len(backups)):] {
		if err := s.store.Delete(ctx, backup.Key); err != nil {
			s.log.Error().Err(err).Str("key", backup.Key).Msg("Failed to delete old backup")
			continue
		}
		s.log.Info().Str("key", backup.Key).Msg("Deleted old backup")
	}
	return nil
}

// snapshotDatabase writes a consistent copy of journal.db using VACUUM INTO,
// which is safe against concurrent writers in WAL mode.
func (s *BackupService) snapshotDatabase(ctx context.Context, destPath string) error {
	_, err := s.journalDB.Conn().ExecContext(ctx, "VACUUM INTO ?", destPath)
	return err
}

func parseArchiveKey(key string) (time.Time, bool) {
	if !strings.HasPrefix(key, archivePrefix) || !strings.HasSuffix(key, ".tar.gz") {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(key, archivePrefix), ".tar.gz")
	timestamp, err := time.Parse(archiveTimeLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return timestamp, true
}

func describeFile(name, path string) (DatabaseMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DatabaseMetadata{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	checksum, err := checksumFile(path)
	if err != nil {
		return DatabaseMetadata{}, fmt.Errorf("failed to checksum %s: %w", path, err)
	}

	return DatabaseMetadata{
		Name:      name,
		Filename:  filepath.Base(path),
		SizeBytes: info.Size(),
		Checksum:  checksum,
	}, nil
}

func checksumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

func writeMetadata(path string, metadata BackupMetadata) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}

func createArchive(archivePath string, files []string) error {
	archiveFile, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer archiveFile.Close()

	gzipWriter := gzip.NewWriter(archiveFile)
	defer gzipWriter.Close()

	tarWriter := tar.NewWriter(gzipWriter)
	defer tarWriter.Close()

	for _, path := range files {
		if err := addFileToArchive(tarWriter, path); err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", path, err)
		}
	}
	return nil
}

func addFileToArchive(tarWriter *tar.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header := &tar.Header{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Mode:    int64(info.Mode()),
		ModTime: info.ModTime(),
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}

	_, err = io.Copy(tarWriter, file)
	return err
}
