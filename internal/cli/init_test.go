package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/changesets/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{Use: "init", RunE: runInit}
}

func TestInit_CreatesFiles(t *testing.T) {
	root := cargoWorkspace(t)

	stdout, _, err := execute(t, newInitCmd(), "--dir", root)
	require.NoError(t, err)

	readme := filepath.Join(root, ".changeset", "README.md")
	cfgPath := filepath.Join(root, ".changeset", "config.yml")
	assert.FileExists(t, readme)
	assert.FileExists(t, cfgPath)
	assert.Contains(t, stdout, readme)
	assert.Contains(t, stdout, cfgPath)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))

	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectDir: root, SkipUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, config.SourceProject, cfg.Source("id_style"))
}

func TestInit_IsIdempotent(t *testing.T) {
	root := cargoWorkspace(t)
	cfgPath := filepath.Join(root, ".changeset", "config.yml")
	writeFiles(t, root, map[string]string{".changeset/config.yml": "id_words: 4\n"})

	_, _, err := execute(t, newInitCmd(), "--dir", root)
	require.NoError(t, err)

	stdout, _, err := execute(t, newInitCmd(), "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Already initialized")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "id_words: 4\n", string(data))
}

func TestInit_MigratesLegacyConfig(t *testing.T) {
	root := cargoWorkspace(t)
	writeFiles(t, root, map[string]string{
		".changeset/config.json": `{"id_words": 2, "baseBranch": "main"}`,
	})

	stdout, stderr, err := execute(t, newInitCmd(), "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Migrated")
	assert.Contains(t, stderr, "config.json")

	assert.FileExists(t, filepath.Join(root, ".changeset", "config.yml"))
	assert.NoFileExists(t, filepath.Join(root, ".changeset", "config.json"))

	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectDir: root, SkipUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.IDWords)
}

func TestInit_WarnsAboutShadowedLegacyConfig(t *testing.T) {
	root := cargoWorkspace(t)
	writeFiles(t, root, map[string]string{
		".changeset/config.yml":  "id_words: 4\n",
		".changeset/config.json": `{"id_words": 2}`,
	})

	stdout, _, err := execute(t, newInitCmd(), "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "! Ignoring")
	assert.Contains(t, stdout, "config.yml takes precedence")
	assert.FileExists(t, filepath.Join(root, ".changeset", "config.json"))
}
