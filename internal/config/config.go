// speclog - RPM changelog assembly from git history

// Package config provides hierarchical configuration management for speclog
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.speclog/config.yml) > user config
// (~/.config/speclog/config.yml) > defaults. Legacy JSON configs are still
// read, with a warning suggesting migration to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Source identifies one source tree contributing commits to the changelog.
type Source struct {
	// Path is the work-tree directory the log command runs in.
	Path string `koanf:"path"`
	// Marker is an optional token appended to every entry from this tree,
	// distinguishing its commits after the logs are merged.
	Marker string `koanf:"marker"`
}

// Configuration holds everything the pipeline needs: file locations, the
// extraction window, and the two source trees. The original tool carried
// these as scattered hard-coded constants; here they are injected at
// startup.
type Configuration struct {
	// LogFile is the working log file every stage reads and rewrites.
	LogFile string `koanf:"log_file"`
	// SpecFile is the packaging spec file the final changelog is appended to.
	SpecFile string `koanf:"spec_file"`
	// Since bounds extraction to commits after this timestamp
	// (format: "2006-01-02 15:04:05", passed to git --after).
	Since string `koanf:"since"`
	// GitCmd is the git executable name or path. Default "git".
	GitCmd string `koanf:"git_cmd"`

	// Companion is extracted first and tagged with its marker.
	Companion Source `koanf:"companion"`
	// Primary is extracted second, appended untagged.
	Primary Source `koanf:"primary"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .speclog/config.yml)
	ProjectConfigPath string
	// WarningWriter receives legacy-format warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses legacy-format warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("SPECLOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
func loadUserConfig(k *koanf.Koanf, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath, _ := UserConfigPath()
	legacyUserPath, _ := LegacyUserConfigPath()

	if fileExists(userYAMLPath) {
		if err := k.Load(file.Provider(userYAMLPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading user config %s: %w", userYAMLPath, err)
		}
		return nil
	}
	if fileExists(legacyUserPath) {
		return loadLegacyJSONConfig(k, legacyUserPath, "user", warningWriter, skipWarnings)
	}
	return nil
}

// loadProjectConfig loads project-level config, with an optional path
// override used by tests and the --config flag.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}

	if fileExists(projectYAMLPath) {
		if err := k.Load(file.Provider(projectYAMLPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", projectYAMLPath, err)
		}
		return nil
	}
	if legacyPath := LegacyProjectConfigPath(); customPath == "" && fileExists(legacyPath) {
		return loadLegacyJSONConfig(k, legacyPath, "project", warningWriter, skipWarnings)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy %s config %s: %w", configType, path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Rewrite it as YAML at the same location with a .yml extension.\n\n")
	}
	return nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nesting levels:
// SPECLOG_LOG_FILE -> log_file, SPECLOG_COMPANION__MARKER -> companion.marker
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "SPECLOG_"))
	return strings.ReplaceAll(key, "__", ".")
}
