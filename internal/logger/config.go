package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// Config describes how the process logs and which attributes tag every record
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	// StorageDriver is "memory" or "postgres"; memory-backed runs lose
	// their ledgers on exit, so every line says which one produced it.
	StorageDriver string
	// RNGSeed is the configured loot seed. Zero means a fresh seed is drawn
	// at startup and the attribute is omitted.
	RNGSeed   uint64
	AddSource bool
}

// ForEnvironment returns the defaults for env. Development logs debug text
// with source locations, test runs only surface warnings, and anything else
// is treated as production.
func ForEnvironment(env string) Config {
	cfg := Config{
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: env,
	}
	switch strings.ToLower(env) {
	case EnvironmentDev, EnvironmentDevelopment:
		cfg.Level, cfg.Format, cfg.AddSource = LogLevelDebug, LogFormatText, true
	case EnvironmentTest:
		cfg.Level, cfg.Format = LogLevelWarn, LogFormatText
	default:
		cfg.Level, cfg.Format = LogLevelInfo, LogFormatJSON
	}
	return cfg
}

// DefaultConfig is the development configuration
func DefaultConfig() Config {
	return ForEnvironment(EnvironmentDev)
}

// WithOverrides replaces level and format when they are set
func (c Config) WithOverrides(level, format string) Config {
	if level != "" {
		c.Level = level
	}
	if format != "" {
		c.Format = format
	}
	return c
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes returns the attributes attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	attrs := []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
	if c.StorageDriver != "" {
		attrs = append(attrs, slog.String(AttrKeyStorage, c.StorageDriver))
	}
	if c.RNGSeed != 0 {
		// string keeps the full uint64 exact in JSON consumers
		attrs = append(attrs, slog.String(AttrKeyRNGSeed, strconv.FormatUint(c.RNGSeed, 10)))
	}
	return attrs
}
