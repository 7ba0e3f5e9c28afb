// Package logging configures the process-wide logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/crocobrasseur/website/internal/config"
)

// Setup applies the configured level and, when a log file is set, mirrors
// output to a size-rotated file alongside stderr.
func Setup(cfg config.LoggingConfig) {
	level, errParse := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if errParse != nil || cfg.Level == "" {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if cfg.File == "" {
		return
	}
	if errMkdir := os.MkdirAll(filepath.Dir(cfg.File), 0o755); errMkdir != nil {
		log.WithError(errMkdir).Warnf("log directory unavailable, file logging disabled: %s", cfg.File)
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotated))
}
