// Package paths resolves the configuration directory, the data directory
// and the server socket. Each follows the same precedence: command-line
// flag, then config.yaml where the key exists, then environment, then a
// default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Default names, relative to the working directory or the data directory.
const (
	AppName            = "nuzlocke"
	DefaultDataDirName = ".nuzlocke-db"
	DefaultSocketName  = "nuzlocke.sock"
	DefaultTUILogName  = "nuzlocke-tui.log"
)

// Environment overrides.
const (
	EnvConfigDir = "NUZLOCKE_CONFIG_DIR"
	EnvDataDir   = "NUZLOCKE_DATA_DIR"
	EnvSocket    = "NUZLOCKE_SOCKET"
)

// platformDir holds platform lookups that tests replace.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/nuzlocke (fallback ~/.config/nuzlocke)
// macOS:   ~/Library/Application Support/nuzlocke
// Windows: %APPDATA%/nuzlocke
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ResolveConfigDir returns flag, else $NUZLOCKE_CONFIG_DIR, else
// DefaultConfigDir. Overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns flag, else the config.yaml data_dir, else
// $NUZLOCKE_DATA_DIR, else $(CWD)/.nuzlocke-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := firstSet(flag, configValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveSocket returns flag, else the config.yaml socket, else
// $NUZLOCKE_SOCKET, else nuzlocke.sock inside dataDir.
func ResolveSocket(flag, configValue, dataDir string) (string, error) {
	if path := firstSet(flag, configValue, os.Getenv(EnvSocket)); path != "" {
		return filepath.Abs(path)
	}
	return filepath.Join(dataDir, DefaultSocketName), nil
}

// TUILogPath is where the interactive editor writes its log; the terminal
// belongs to the UI.
func TUILogPath(dataDir string) string {
	return filepath.Join(dataDir, DefaultTUILogName)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
