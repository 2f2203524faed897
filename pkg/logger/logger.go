// Package logger provides structured logging for the trading journal service.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level    string // debug, info, warn, error
	Pretty   bool   // Enable pretty console output
	FilePath string // Optional log file (rotated); empty disables file output
}

// New creates a new structured logger.
// Console output goes to stdout (pretty in dev mode). When FilePath is set,
// output is additionally written to a size-rotated file.
func New(cfg Config) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	// Configure output
	var writers []io.Writer
	if cfg.Pretty {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	} else {
		writers = append(writers, os.Stdout)
	}

	// File writer with rotation
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    50, // megabytes
				MaxBackups: 7,
				MaxAge:     30, // days
			})
		}
	}

	var output io.Writer = writers[0]
	if len(writers) > 1 {
		output = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetGlobalLogger sets the package-level logger
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
