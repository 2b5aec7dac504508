// Package config loads config.yaml from the configuration directory and
// overlays environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

const (
	fileName = "config"
	fileType = "yaml"
	fileExt  = "config.yaml"
)

// Keys of config.yaml.
const (
	KeyBackend  = "backend"
	KeyDataDir  = "data_dir"
	KeySocket   = "socket"
	KeyLogLevel = "log_level"
	KeySync     = "sync"
)

// Defaults for keys missing from the file.
const (
	DefaultBackend  = types.BackendSQLite
	DefaultLogLevel = "info"
	DefaultSync     = types.SyncImmediate
)

// ErrInvalidLogLevel is returned for a log level slog does not know.
var ErrInvalidLogLevel = errors.New("invalid log level")

// defaultYAML is written on first run.
const defaultYAML = `# nuzlocke configuration

# Storage backend.
backend: sqlite

# Data directory (overridden by --data-dir).
# data_dir:

# Server socket (overridden by --socket). Defaults to <data_dir>/nuzlocke.sock.
# socket:

# debug | info | warn | error
log_level: info

# immediate writes JSONL on every change; on_close writes on shutdown.
sync: immediate
`

// Settings is the merged configuration. DataDir and Socket are the raw
// file values; paths resolves them against flags and environment.
type Settings struct {
	Backend  string
	DataDir  string
	Socket   string
	LogLevel string
	Sync     string
}

// overrides are environment values that replace file values when set.
type overrides struct {
	Backend  string `env:"NUZLOCKE_BACKEND"`
	LogLevel string `env:"NUZLOCKE_LOG_LEVEL"`
	Sync     string `env:"NUZLOCKE_SYNC"`
}

// Load reads config.yaml from configDir, creating the directory and a
// default file when missing, and overlays environment overrides.
func Load(configDir string) (Settings, error) {
	if err := EnsureDefault(configDir); err != nil {
		return Settings{}, err
	}

	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeySync, DefaultSync)
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Backend:  v.GetString(KeyBackend),
		DataDir:  v.GetString(KeyDataDir),
		Socket:   v.GetString(KeySocket),
		LogLevel: v.GetString(KeyLogLevel),
		Sync:     v.GetString(KeySync),
	}

	var o overrides
	if err := env.Parse(&o); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	s.apply(o)

	if _, err := ParseLevel(s.LogLevel); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) apply(o overrides) {
	if o.Backend != "" {
		s.Backend = o.Backend
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	if o.Sync != "" {
		s.Sync = o.Sync
	}
}

// SetLogLevel replaces the log level when level is non-empty, as the
// --log-level flag does.
func (s *Settings) SetLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := ParseLevel(level); err != nil {
		return err
	}
	s.LogLevel = level
	return nil
}

// Level returns the slog level of the settings. An invalid level reads as
// info; Load has already rejected it.
func (s Settings) Level() slog.Level {
	level, err := ParseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// StoreConfig returns the store configuration for dataDir.
func (s Settings) StoreConfig(dataDir string) types.Config {
	return types.Config{
		Backend:      s.Backend,
		DataDir:      dataDir,
		SyncStrategy: s.Sync,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels,
// case-insensitively.
func ParseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
	}
	return level, nil
}

// EnsureDefault creates configDir and writes the default config.yaml if
// none exists. An existing file is left alone.
func EnsureDefault(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(configDir, fileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultYAML), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Path returns the config.yaml path inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, fileExt)
}
