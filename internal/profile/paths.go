// Package profile resolves on-disk locations and naming rules for clack
// profiles. Each profile owns its local KV store, daemon database, logs, and
// lock file under ~/.clack/profiles/<name>.
package profile

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.clack.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".clack")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// KVDir returns the local message store directory for a profile.
func KVDir(name string) string {
	return filepath.Join(Dir(name), "kv")
}

// DBPath returns the daemon-owned clack.db path.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "clack.db")
}

// LockPath returns the daemon lock file path for a profile.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// DaemonLogPath returns the daemon log file path.
func DaemonLogPath(name string) string {
	return filepath.Join(LogDir(name), "clackd.log")
}

// TUILogPath returns the TUI log file path.
func TUILogPath(name string) string {
	return filepath.Join(LogDir(name), "clacktui.log")
}

// ExportDir returns the directory transcripts are exported to.
func ExportDir(name string) string {
	return filepath.Join(Dir(name), "exports")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	dirs := []string{
		Dir(name),
		KVDir(name),
		LogDir(name),
		ExportDir(name),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
