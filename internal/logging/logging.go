// Package logging points the standard logger at stderr and, optionally, a
// size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"devroutine/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Writer builds the log destination for cfg. With no file configured it is
// stderr alone.
func Writer(cfg config.LogSettings, stderr io.Writer) (io.Writer, io.Closer, error) {
	if cfg.File == "" {
		return stderr, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}
	return io.MultiWriter(stderr, rotator), rotator, nil
}

// Setup redirects the standard logger. The returned closer flushes and closes
// the log file and must be closed on shutdown.
func Setup(cfg config.LogSettings) (io.Closer, error) {
	w, closer, err := Writer(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.File != "" {
		log.Printf("[logging] writing to %s (max %dMB, %d backups)", cfg.File, cfg.MaxSizeMB, cfg.MaxBackups)
	}
	return closer, nil
}
