package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/jstrader/tradejournal/internal/database"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var startTime = time.Now()

// BackupRunner triggers a backup run; implemented by the reliability
// backup service.
type BackupRunner interface {
	Run(ctx context.Context) (string, error)
}

// SystemHandlers provides system monitoring and operations endpoints.
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	journalDB *database.DB
	backup    BackupRunner
}

// NewSystemHandlers creates a new system handlers instance.
func NewSystemHandlers(log zerolog.Logger, dataDir string, journalDB *database.DB, backup BackupRunner) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		dataDir:   dataDir,
		journalDB: journalDB,
		backup:    backup,
	}
}

// HandleHealth reports process and host health. Degrades to "degraded" when
// the document store does not answer a ping.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	if h.journalDB != nil {
		if err := h.journalDB.Conn().PingContext(r.Context()); err != nil {
			status = "degraded"
			dbStatus = err.Error()
		}
	}

	cpuPercent, memPercent := h.systemStats()

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int(time.Since(startTime).Seconds()),
		"cpu_percent":    cpuPercent,
		"memory_percent": memPercent,
		"goroutines":     runtime.NumGoroutine(),
	})
}

// HandleVersion reports the running build.
func (h *SystemHandlers) HandleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version":    Version,
		"go_version": runtime.Version(),
	})
}

// HandleTriggerBackup runs a backup immediately (same path as the nightly
// job).
func (h *SystemHandlers) HandleTriggerBackup(w http.ResponseWriter, r *http.Request) {
	if h.backup == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "backups are not configured"})
		return
	}

	key, err := h.backup.Run(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Manual backup failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "backup failed"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "completed", "key": key})
}

// systemStats returns CPU and memory usage percentages. Best effort; a probe
// failure reports zero rather than failing the health check.
func (h *SystemHandlers) systemStats() (float64, float64) {
	var cpuPercent, memPercent float64

	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	}
	if memStat, err := mem.VirtualMemory(); err == nil {
		memPercent = memStat.UsedPercent
	}
	return cpuPercent, memPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
