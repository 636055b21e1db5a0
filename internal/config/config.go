// changesets - Record pending release intents for multi-package workspaces
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/changesets

// Package config provides hierarchical configuration management for changesets using koanf.
// Configuration is loaded with priority: environment variables > project config (.changeset/config.yml)
// > user config (~/.config/changesets/config.yml) > defaults. A legacy .changeset/config.json is
// still read when no YAML project config exists.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides (CHANGESETS_LOG_LEVEL=debug).
const EnvPrefix = "CHANGESETS_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the changesets CLI configuration
type Configuration struct {
	// ChangesetDir is where changeset files are written, relative to the
	// workspace root.
	ChangesetDir string `koanf:"changeset_dir" yaml:"changeset_dir" validate:"required"`

	// Workspace forces a workspace kind instead of detecting it from the
	// manifests at the root: auto | cargo | go | npm | bazel.
	Workspace string `koanf:"workspace" yaml:"workspace" validate:"oneof=auto cargo go npm bazel"`

	// IDStyle selects how new changeset file names are generated: human | uuid.
	IDStyle string `koanf:"id_style" yaml:"id_style" validate:"oneof=human uuid"`
	// IDWords is the number of words in a human id.
	IDWords int `koanf:"id_words" yaml:"id_words" validate:"min=2,max=5"`

	LogLevel          string `koanf:"log_level" yaml:"log_level" validate:"oneof=none error warn info debug"`
	SkipConfirmations bool   `koanf:"skip_confirmations" yaml:"skip_confirmations"` // Can also be set via CHANGESETS_YES

	// Sources records the layer each key was last set by.
	Sources map[string]ConfigSource `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is the workspace root holding .changeset/ (default: current directory)
	ProjectDir string
	// ProjectConfigPath overrides the project config path (default: <ProjectDir>/.changeset/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: UserConfigPath())
	UserConfigPath string
	// SkipUserConfig ignores the user config entirely
	SkipUserConfig bool
	// WarningWriter receives legacy config warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses legacy config warnings
	SkipWarnings bool
}

// Load loads configuration for the workspace rooted at projectDir.
func Load(projectDir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectDir: projectDir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k, sources)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, sources, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, sources, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k, sources); err != nil {
		return nil, err
	}

	return finalizeConfig(k, sources)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf, sources map[string]ConfigSource) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
		sources[key] = SourceDefault
	}
}

// loadUserConfig loads ~/.config/changesets/config.yml when present.
func loadUserConfig(k *koanf.Koanf, sources map[string]ConfigSource, customPath string) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := checkFile(path); err != nil {
		return fmt.Errorf("validating user config: %w", err)
	}
	if err := loadLayer(k, sources, file.Provider(path), yaml.Parser(), path, SourceUser); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project YAML config, falling back to the
// legacy JSON file with a warning. When both exist the JSON file is ignored.
func loadProjectConfig(k *koanf.Koanf, sources map[string]ConfigSource, opts LoadOptions, warningWriter io.Writer) error {
	yamlPath := opts.ProjectConfigPath
	if yamlPath == "" {
		yamlPath = ProjectConfigPath(opts.ProjectDir)
	}
	legacyPath := LegacyProjectConfigPath(opts.ProjectDir)

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := checkFile(yamlPath); err != nil {
			return fmt.Errorf("validating project config: %w", err)
		}
		if err := loadLayer(k, sources, file.Provider(yamlPath), yaml.Parser(), yamlPath, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if legacyExists && !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
			fmt.Fprintf(warningWriter, "  Remove or rename it to silence this warning.\n\n")
		}
	case legacyExists:
		if err := loadLayer(k, sources, file.Provider(legacyPath), json.Parser(), legacyPath, SourceProject); err != nil {
			return fmt.Errorf("loading legacy project config: %w", err)
		}
		if !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using legacy JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'changesets config migrate' to migrate to YAML format.\n\n")
		}
	}
	return nil
}

// loadLayer merges one config file into k and records the keys it set.
func loadLayer(k *koanf.Koanf, sources map[string]ConfigSource, p koanf.Provider, parser koanf.Parser, path string, source ConfigSource) error {
	layer := koanf.New(".")
	if err := layer.Load(p, parser); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := k.Merge(layer); err != nil {
		return fmt.Errorf("merging %s: %w", path, err)
	}
	for _, key := range layer.Keys() {
		sources[key] = source
	}
	return nil
}

// loadEnvironmentConfig loads CHANGESETS_* overrides
func loadEnvironmentConfig(k *koanf.Koanf, sources map[string]ConfigSource) error {
	layer := koanf.New(".")
	if err := layer.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}

	for _, key := range layer.Keys() {
		if _, known := KnownKeys[key]; !known {
			continue
		}
		_ = k.Set(key, layer.Get(key))
		sources[key] = SourceEnv
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates the merged layers
func finalizeConfig(k *koanf.Koanf, sources map[string]ConfigSource) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Workspace = strings.ToLower(strings.TrimSpace(cfg.Workspace))
	cfg.IDStyle = strings.ToLower(strings.TrimSpace(cfg.IDStyle))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.ChangesetDir = strings.TrimSpace(cfg.ChangesetDir)

	if err := validateValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if os.Getenv(EnvPrefix+"YES") != "" {
		cfg.SkipConfirmations = true
		sources["skip_confirmations"] = SourceEnv
	}

	cfg.Sources = sources
	return &cfg, nil
}

// Source returns where key was set, or SourceDefault when unknown.
func (c *Configuration) Source(key string) ConfigSource {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Values returns the effective value of every known key.
func (c *Configuration) Values() map[string]interface{} {
	return map[string]interface{}{
		"changeset_dir":      c.ChangesetDir,
		"workspace":          c.Workspace,
		"id_style":           c.IDStyle,
		"id_words":           c.IDWords,
		"log_level":          c.LogLevel,
		"skip_confirmations": c.SkipConfirmations,
	}
}

// ChangesetPath returns the changeset directory under root. Absolute
// directories are returned unchanged.
func (c *Configuration) ChangesetPath(root string) string {
	dir := expandHomePath(c.ChangesetDir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGESETS_ID_WORDS -> id_words
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
