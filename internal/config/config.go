// Package config reads runtime settings from the environment.
//
// The server is launched by an MCP client, which passes configuration as
// environment variables rather than flags:
//
//	IMAGE_EDITOR_LOG_LEVEL         logrus level name (default "info")
//	IMAGE_EDITOR_LOG_FORMAT        "text" or "json" (default "text")
//	IMAGE_EDITOR_HISTORY_DEPTH     max undo snapshots, 0 = unbounded (default 0)
//	IMAGE_EDITOR_COMPACT_HISTORY   compress snapshots below the top (default false)
//	IMAGE_EDITOR_PNG_COMPRESSION   "default", "none", "speed" or "best"
package config

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvLogLevel       = "IMAGE_EDITOR_LOG_LEVEL"
	EnvLogFormat      = "IMAGE_EDITOR_LOG_FORMAT"
	EnvHistoryDepth   = "IMAGE_EDITOR_HISTORY_DEPTH"
	EnvCompactHistory = "IMAGE_EDITOR_COMPACT_HISTORY"
	EnvPNGCompression = "IMAGE_EDITOR_PNG_COMPRESSION"
)

// Config holds every runtime setting.
type Config struct {
	LogLevel       logrus.Level
	LogJSON        bool
	HistoryDepth   int
	CompactHistory bool
	PNGCompression png.CompressionLevel
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		LogLevel:       logrus.InfoLevel,
		PNGCompression: png.DefaultCompression,
	}
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load reads the configuration through getenv. Unset or empty variables
// keep their defaults; malformed values are reported as errors naming the
// variable.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	switch v := strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat))); v {
	case "", "text":
	case "json":
		cfg.LogJSON = true
	default:
		return cfg, fmt.Errorf("%s: unknown format %q (want text or json)", EnvLogFormat, v)
	}

	if v := strings.TrimSpace(getenv(EnvHistoryDepth)); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvHistoryDepth, err)
		}
		if depth < 0 {
			return cfg, fmt.Errorf("%s: depth %d must not be negative", EnvHistoryDepth, depth)
		}
		cfg.HistoryDepth = depth
	}

	if v := strings.TrimSpace(getenv(EnvCompactHistory)); v != "" {
		compact, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCompactHistory, err)
		}
		cfg.CompactHistory = compact
	}

	switch v := strings.ToLower(strings.TrimSpace(getenv(EnvPNGCompression))); v {
	case "", "default":
		cfg.PNGCompression = png.DefaultCompression
	case "none":
		cfg.PNGCompression = png.NoCompression
	case "speed":
		cfg.PNGCompression = png.BestSpeed
	case "best":
		cfg.PNGCompression = png.BestCompression
	default:
		return cfg, fmt.Errorf("%s: unknown level %q", EnvPNGCompression, v)
	}

	return cfg, nil
}

// NewLogger builds the process logger. Output goes to stderr because stdout
// carries the MCP protocol.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(c.LogLevel)

	if c.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			DisableColors:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}
