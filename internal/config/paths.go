package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config path:
// ~/.config/speclog/config.yml
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "speclog", "config.yml"), nil
}

// LegacyUserConfigPath returns the deprecated JSON user config path:
// ~/.speclog/config.json
func LegacyUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".speclog", "config.json"), nil
}

// ProjectConfigPath returns the project config path relative to the
// current directory: .speclog/config.yml
func ProjectConfigPath() string {
	return filepath.Join(".speclog", "config.yml")
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return filepath.Join(".speclog", "config.json")
}
