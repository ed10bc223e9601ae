// Package paths resolves where dinoguessr keeps its config and data files.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "dinoguessr"

// ConfigDir returns the directory holding config.yaml.
// Honors XDG_CONFIG_HOME, falling back to ~/.config/dinoguessr.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return filepath.Join(homeDir(), ".config", appName)
}

// DataDir returns the directory holding the database and log file.
// Honors XDG_DATA_HOME, falling back to ~/.local/share/dinoguessr.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return filepath.Join(homeDir(), ".local", "share", appName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DatabaseFile returns the default SQLite database path.
func DatabaseFile() string {
	return filepath.Join(DataDir(), appName+".db")
}

// LogFile returns the default log file path.
func LogFile() string {
	return filepath.Join(DataDir(), appName+".log")
}

// Expand replaces a leading "~/" with the user's home directory.
func Expand(path string) string {
	if path == "~" {
		return homeDir()
	}
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
