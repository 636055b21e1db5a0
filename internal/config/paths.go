package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigDirName is the project config directory under the workspace
// root. It doubles as the default changeset directory.
const ProjectConfigDirName = ".changeset"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/changesets/config.yml
// - macOS: ~/Library/Application Support/changesets/config.yml
// - Windows: %APPDATA%\changesets\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "changesets", "config.yml"), nil
}

// ProjectConfigPath returns .changeset/config.yml under projectDir.
// An empty projectDir means the current directory.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectConfigDirName, "config.yml")
}

// LegacyProjectConfigPath returns the JSON config path used by earlier
// releases: .changeset/config.json under projectDir.
func LegacyProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectConfigDirName, "config.json")
}
