package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/changesets/internal/config"
	clierrors "github.com/ariel-frischer/changesets/internal/errors"
)

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "show", RunE: runConfigShow}
	cmd.Flags().Bool("yaml", false, "")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "set", Args: cobra.ExactArgs(2), RunE: runConfigSet}
	cmd.Flags().Bool("user", false, "")
	return cmd
}

func newConfigMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", RunE: runConfigMigrate}
	cmd.Flags().Bool("dry-run", false, "")
	return cmd
}

func TestConfigCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"show", "set", "migrate", "path"} {
		cmd, _, err := rootCmd.Find([]string{"config", name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.Contains(t, configCmd.Long, "CHANGESETS_*")
}

func TestConfigShow_Sources(t *testing.T) {
	root := cargoWorkspace(t)
	writeFiles(t, root, map[string]string{".changeset/config.yml": "id_style: uuid\n"})
	t.Setenv("CHANGESETS_LOG_LEVEL", "warn")

	stdout, _, err := execute(t, newConfigShowCmd(), "--dir", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, len(config.KnownKeys))

	tests := map[string]struct {
		key  string
		want string
	}{
		"default": {key: "changeset_dir", want: ".changeset  (default)"},
		"project": {key: "id_style", want: "uuid  (project)"},
		"env":     {key: "log_level", want: "warn  (env)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var line string
			for _, l := range lines {
				if strings.HasPrefix(l, tt.key+" ") {
					line = l
				}
			}
			require.NotEmpty(t, line, "no line for %s", tt.key)
			assert.True(t, strings.HasSuffix(line, tt.want), "line %q", line)
		})
	}
}

func TestConfigShow_ExplicitConfigFile(t *testing.T) {
	root := cargoWorkspace(t)
	custom := filepath.Join(t.TempDir(), "ci.yml")
	writeFiles(t, filepath.Dir(custom), map[string]string{"ci.yml": "skip_confirmations: true\n"})

	stdout, _, err := execute(t, newConfigShowCmd(), "--dir", root, "--config", custom)
	require.NoError(t, err)
	assert.Contains(t, stdout, "true  (project)")
}

func TestConfigShow_YAML(t *testing.T) {
	root := cargoWorkspace(t)

	stdout, _, err := execute(t, newConfigShowCmd(), "--dir", root, "--yaml")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, config.GetDefaults(), got)
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	root := cargoWorkspace(t)
	writeFiles(t, root, map[string]string{".changeset/config.yml": "id_words: 9\n"})

	_, _, err := execute(t, newConfigShowCmd(), "--dir", root)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, handleError(&bytes.Buffer{}, err))
}

func TestConfigSet(t *testing.T) {
	tests := map[string]struct {
		initial      string
		key          string
		value        string
		wantOutput   string
		wantContains []string
	}{
		"new file": {
			key:          "id_style",
			value:        "uuid",
			wantOutput:   "Set id_style = uuid in project config",
			wantContains: []string{"id_style: uuid"},
		},
		"update keeps other keys and comments": {
			initial:      "# team settings\nid_words: 3 # short ids\nworkspace: cargo\n",
			key:          "id_words",
			value:        "4",
			wantOutput:   "Set id_words = 4",
			wantContains: []string{"# team settings", "id_words: 4 # short ids", "workspace: cargo"},
		},
		"enum is normalized": {
			key:          "log_level",
			value:        "DEBUG",
			wantOutput:   "Set log_level = debug",
			wantContains: []string{"log_level: debug"},
		},
		"bool": {
			key:          "skip_confirmations",
			value:        "true",
			wantOutput:   "Set skip_confirmations = true",
			wantContains: []string{"skip_confirmations: true"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := cargoWorkspace(t)
			if tt.initial != "" {
				writeFiles(t, root, map[string]string{".changeset/config.yml": tt.initial})
			}

			stdout, _, err := execute(t, newConfigSetCmd(), "--dir", root, tt.key, tt.value)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.wantOutput)

			data, err := os.ReadFile(config.ProjectConfigPath(root))
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(data), want)
			}

			cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectDir: root, SkipUserConfig: true, SkipWarnings: true})
			require.NoError(t, err)
			assert.Equal(t, config.SourceProject, cfg.Source(tt.key))
		})
	}
}

func TestConfigSet_User(t *testing.T) {
	root := cargoWorkspace(t)

	stdout, _, err := execute(t, newConfigSetCmd(), "--dir", root, "--user", "id_words", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "in user config")
	assert.NoFileExists(t, config.ProjectConfigPath(root))

	userPath, err := config.UserConfigPath()
	require.NoError(t, err)
	assert.Contains(t, stdout, userPath)
}

func TestConfigSet_Errors(t *testing.T) {
	tests := map[string]struct {
		key          string
		value        string
		wantCategory clierrors.ErrorCategory
		wantContains string
	}{
		"unknown key": {
			key:          "changelog",
			value:        "x",
			wantCategory: clierrors.Argument,
			wantContains: "unknown configuration key",
		},
		"not an integer": {
			key:          "id_words",
			value:        "four",
			wantCategory: clierrors.Argument,
			wantContains: "invalid integer",
		},
		"out of range": {
			key:          "id_words",
			value:        "9",
			wantCategory: clierrors.Argument,
			wantContains: "an integer from 2 to 5",
		},
		"bad enum": {
			key:          "workspace",
			value:        "maven",
			wantCategory: clierrors.Argument,
			wantContains: "valid options: auto, cargo, go, npm, bazel",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := cargoWorkspace(t)

			_, _, err := execute(t, newConfigSetCmd(), "--dir", root, tt.key, tt.value)
			require.Error(t, err)

			cliErr := clierrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, tt.wantCategory, cliErr.Category)
			assert.Contains(t, cliErr.Error(), tt.wantContains)
			assert.NoFileExists(t, config.ProjectConfigPath(root))
		})
	}
}

func TestConfigSet_BrokenFile(t *testing.T) {
	root := cargoWorkspace(t)
	writeFiles(t, root, map[string]string{".changeset/config.yml": "workspace: [cargo\n"})

	_, _, err := execute(t, newConfigSetCmd(), "--dir", root, "id_words", "4")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, handleError(&bytes.Buffer{}, err))
}

func TestConfigMigrate(t *testing.T) {
	tests := map[string]struct {
		args         []string
		wantContains string
		wantYAML     bool
	}{
		"dry run": {
			args:         []string{"--dry-run"},
			wantContains: "Would migrate",
		},
		"migrate": {
			wantContains: "config.json.bak",
			wantYAML:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := cargoWorkspace(t)
			writeFiles(t, root, map[string]string{".changeset/config.json": `{"workspace": "cargo"}`})

			stdout, _, err := execute(t, newConfigMigrateCmd(), append([]string{"--dir", root}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.wantContains)

			if tt.wantYAML {
				assert.FileExists(t, config.ProjectConfigPath(root))
			} else {
				assert.NoFileExists(t, config.ProjectConfigPath(root))
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	root := cargoWorkspace(t)
	writeFiles(t, root, map[string]string{".changeset/config.yml": "id_words: 2\n"})

	stdout, _, err := execute(t, &cobra.Command{Use: "path", RunE: runConfigPath}, "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "user:")
	assert.Contains(t, stdout, config.ProjectConfigPath(root)+" (exists)")
}
