// Package paths provides XDG-compliant path resolution for Mira.
//
// Resolution order:
// 1. MIRA_HOME (portable root) → $MIRA_HOME/{config,data,state,cache}
// 2. XDG env vars → $XDG_*_HOME/mira
// 3. Platform defaults → ~/.config/mira, ~/.local/share/mira, etc.
package paths

import (
	"os"
	"path/filepath"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if miraHome := os.Getenv("MIRA_HOME"); miraHome != "" {
		return filepath.Join(miraHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getDataHome returns the base data home directory.
func getDataHome() string {
	if miraHome := os.Getenv("MIRA_HOME"); miraHome != "" {
		return filepath.Join(miraHome, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if miraHome := os.Getenv("MIRA_HOME"); miraHome != "" {
		return filepath.Join(miraHome, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// getCacheHome returns the base cache home directory.
func getCacheHome() string {
	if miraHome := os.Getenv("MIRA_HOME"); miraHome != "" {
		return filepath.Join(miraHome, "cache")
	}
	if xdgCacheHome := os.Getenv("XDG_CACHE_HOME"); xdgCacheHome != "" {
		return xdgCacheHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache")
	}
	return ""
}

// ConfigDir returns the Mira configuration directory.
// Used for config files like mira.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "mira")
}

// DataDir returns the Mira data directory.
// Used for the permanent media library and demo fixtures.
func DataDir() string {
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "mira")
}

// StateDir returns the Mira state directory.
// Used for wizard state, message history, logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "mira")
}

// CacheDir returns the Mira cache directory.
// Used for temporary/regenerable data such as picker staging files.
func CacheDir() string {
	base := getCacheHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "mira")
}

// MediaDir returns the permanent media library directory.
// Resolution order:
// 1. MIRA_MEDIA env var (explicit override for demos/testing)
// 2. DataDir()/media (standard location)
func MediaDir() string {
	if mediaDir := os.Getenv("MIRA_MEDIA"); mediaDir != "" {
		return mediaDir
	}
	data := DataDir()
	if data == "" {
		return ""
	}
	return filepath.Join(data, "media")
}

// ImportDir returns the directory watched for incoming photos.
// Stands in for the device camera roll on desktop platforms.
func ImportDir() string {
	data := DataDir()
	if data == "" {
		return ""
	}
	return filepath.Join(data, "import")
}

// LogDir returns the directory for application log files.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// HistoryDBPath returns the path to the chat history database.
func HistoryDBPath() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "history.db")
}

// EnsureDirs creates all Mira directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		ConfigDir(),
		DataDir(),
		StateDir(),
		CacheDir(),
		MediaDir(),
		ImportDir(),
		LogDir(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
