package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	BackupPath string
	Success    bool
	DryRun     bool
	Message    string
}

// MigrateJSONToYAML converts a JSON config file to YAML format.
//
// Only known keys are carried over; settings of other tools sharing the
// legacy file are dropped from the YAML copy. The JSON file is renamed to
// .bak after a successful write. An existing YAML file is never overwritten.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		DryRun:     dryRun,
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
			return result, nil
		}
		return nil, fmt.Errorf("failed to read JSON config: %w", err)
	}

	var configData map[string]interface{}
	if err := json.Unmarshal(jsonData, &configData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	if _, err := os.Stat(yamlPath); err == nil {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	known := make(map[string]interface{})
	for key, value := range configData {
		if _, ok := KnownKeys[key]; ok {
			known[key] = value
		}
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s → %s (%d keys)", jsonPath, yamlPath, len(known))
		return result, nil
	}

	yamlData, err := yaml.Marshal(known)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	if len(known) == 0 {
		yamlData = nil
	}
	if err := checkYAML(yamlData, yamlPath); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# Changesets Configuration\n# Migrated from JSON format\n\n"
	if err := os.WriteFile(yamlPath, []byte(header+string(yamlData)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write YAML config: %w", err)
	}

	backup, err := backupLegacyConfig(jsonPath)
	if err != nil {
		return nil, err
	}

	result.Success = true
	result.BackupPath = backup
	result.Message = fmt.Sprintf("Migrated %s → %s", jsonPath, yamlPath)
	return result, nil
}

// MigrateProjectConfig migrates .changeset/config.json under projectDir to YAML.
func MigrateProjectConfig(projectDir string, dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(projectDir), ProjectConfigPath(projectDir), dryRun)
}

// backupLegacyConfig renames the JSON config to <path>.bak.
func backupLegacyConfig(jsonPath string) (string, error) {
	bakPath := jsonPath + ".bak"
	if err := os.Rename(jsonPath, bakPath); err != nil {
		return "", fmt.Errorf("failed to backup legacy config: %w", err)
	}
	return bakPath, nil
}
