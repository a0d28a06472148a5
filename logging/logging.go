package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-extras/properties"

	"github.com/natefinch/lumberjack"
)

// Rotation defaults for file output.
const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 14
)

// Property keys read by LoggerConfig.Bind, relative to the bound prefix.
const (
	LevelKey = "level"
	FileKey  = "file"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	// Level is one of DEBUG, INFO, WARN or ERROR; anything else means INFO.
	Level string
	// File, when set, sends records to a rotated file instead of the writer passed to NewLogger.
	File string
}

// Bind reads the level and file below prefix, keeping values already set when absent.
func (c *LoggerConfig) Bind(store *properties.Store, prefix string) error {
	c.Level = store.String(properties.Join(prefix, LevelKey), c.Level)
	c.File = store.String(properties.Join(prefix, FileKey), c.File)

	return nil
}

// NewLogger creates a JSON slog.Logger at the configured level.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(Output(config, w), &slog.HandlerOptions{
		AddSource:   false,
		Level:       ParseLevel(config.Level),
		ReplaceAttr: nil,
	})

	return slog.New(handler)
}

// Output returns the writer log records go to: a lumberjack rotator when
// config.File is set, w otherwise.
func Output(config LoggerConfig, w io.Writer) io.Writer {
	if config.File == "" {
		return w
	}

	return &lumberjack.Logger{
		Filename:   config.File,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		LocalTime:  false,
		Compress:   true,
	}
}

// ParseLevel maps a level name to a slog.Level, case-insensitively.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
