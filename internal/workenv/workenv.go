// Package workenv resolves the per-platform directories genie-scx reads
// its defaults from.
package workenv

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "genie"

// RemapTablesFile is the name of the default remap table override file.
const RemapTablesFile = "remap.yaml"

// ConfigRoot returns the configuration directory. override wins when set.
func ConfigRoot(override string) string {
	if override != "" {
		return override
	}

	// Use platform-specific defaults
	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", appName)
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, appName)
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName)
		}
	}

	// Fallback to temp directory
	return filepath.Join(os.TempDir(), appName)
}

// RemapTablesPath returns the remap table override file to load, or "" when
// there is none. explicit is used as given; otherwise the default file in
// the config root is used if it exists.
func RemapTablesPath(explicit, configDir string) string {
	if explicit != "" {
		return explicit
	}
	path := filepath.Join(ConfigRoot(configDir), RemapTablesFile)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return ""
}
