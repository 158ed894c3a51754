// Package config provides hierarchical configuration management for relnote
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relnote/config.yml) > user config (~/.config/relnote/config.yml)
// > defaults. Legacy JSON project configs are still honored with a warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the relnote CLI tool configuration.
type Configuration struct {
	// Packages lists the workspace package names changelogs are generated
	// for. Each name is matched against commit scopes and, with TagPrefix
	// prepended, against release tags.
	Packages []string `koanf:"packages"`

	// TagPrefix is prepended to package names when filtering release tags,
	// e.g. "@ant-design/" for tags like "@ant-design/pro-card@1.2.3".
	// Can be set via RELNOTE_TAG_PREFIX env var.
	TagPrefix string `koanf:"tag_prefix"`

	// OutputDir is the directory generated changelogs are written to.
	// It is recreated on every generate run.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// Convention selects the commit-subject matcher.
	// Valid values: "loose" (default, the historic pattern) or "strict".
	Convention string `koanf:"convention" validate:"omitempty,oneof=loose strict"`

	// Timeout bounds each GitHub lookup, in seconds.
	// Can be set via RELNOTE_TIMEOUT env var.
	Timeout int `koanf:"timeout" validate:"min=0,max=600"`

	// RegistryURL points promotion at an npm-compatible registry.
	RegistryURL string `koanf:"registry_url" validate:"omitempty,url"`

	// PackagesDir is the workspace directory holding one subdirectory per
	// publishable package.
	PackagesDir string `koanf:"packages_dir" validate:"required"`
}

// LookupTimeout returns the per-lookup deadline as a duration.
func (c *Configuration) LookupTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnote/config.yml)
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

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr.
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if !fileExists(userPath) {
		return nil
	}
	return loadYAMLConfig(k, userPath, "user")
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON
// supported with a warning). Supports a custom path override.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return err
		}
		if legacyProjectExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: legacy JSON config found at %s (ignored, using %s)\n", legacyProjectPath, projectYAMLPath)
		}
		return nil
	}

	if legacyProjectExists {
		if err := k.Load(file.Provider(legacyProjectPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyProjectPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s; move it to %s\n", legacyProjectPath, ProjectConfigPath())
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("RELNOTE_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.OutputDir = expandHomePath(cfg.OutputDir)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: RELNOTE_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELNOTE_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
