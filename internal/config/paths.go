package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relnote/config.yml
// - macOS: ~/Library/Application Support/relnote/config.yml
// - Windows: %APPDATA%\relnote\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnote", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnote"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .relnote/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".relnote", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".relnote"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
// This was the old location: .relnote/config.json
func LegacyProjectConfigPath() string {
	return filepath.Join(".relnote", "config.json")
}
