package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/changesets/internal/config"
	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect, change and migrate changesets configuration",
	Long: `Inspect, change and migrate changesets configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHANGESETS_*)
  2. Project config (.changeset/config.yml)
  3. User config (~/.config/changesets/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration and where each value comes from
  changesets config show

  # Show it as YAML
  changesets config show --yaml

  # Use uuid file names in this repository
  changesets config set id_style uuid

  # Skip confirmations everywhere
  changesets config set skip_confirmations true --user

  # Convert a legacy .changeset/config.json
  changesets config migrate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config (.changeset/config.yml),
or in the user config with --user. The value is checked against the key's type
before anything is written; other keys and comments in the file are kept.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert .changeset/config.json to config.yml",
	Long: `Convert the legacy .changeset/config.json to .changeset/config.yml.

Only changesets keys are carried over. The JSON file is kept as config.json.bak.
An existing config.yml is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configShowCmd.Flags().Bool("yaml", false, "Print the configuration as YAML")
	configSetCmd.Flags().Bool("user", false, "Write the user config instead of the project config")
	configMigrateCmd.Flags().Bool("dry-run", false, "Show what would be migrated without writing")
	configCmd.AddCommand(configShowCmd, configSetCmd, configMigrateCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if boolFlag(cmd, "yaml") {
		data, err := yaml.Marshal(a.cfg)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		fmt.Fprint(a.out, string(data))
		return nil
	}

	printConfig(a.out, a.cfg)
	return nil
}

func printConfig(w io.Writer, cfg *config.Configuration) {
	keys := config.SortedKeys()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}

	values := cfg.Values()
	dim := color.New(color.Faint).SprintFunc()
	for _, key := range keys {
		fmt.Fprintf(w, "%-*s  %v  %s\n", width, key, values[key], dim("("+string(cfg.Source(key))+")"))
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	value, err := config.ValidateValue(key, raw)
	if err != nil {
		var unknown config.ErrUnknownKey
		if errors.As(err, &unknown) {
			return clierrors.InvalidConfigKey(key, config.SortedKeys())
		}
		return clierrors.WrapWithMessage(err, clierrors.Argument, "invalid value for "+key,
			"Describe the key with: changesets config show")
	}

	scope, path, err := configSetTarget(cmd)
	if err != nil {
		return err
	}
	if err := config.SetConfigValue(path, value); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "updating "+path,
			"Fix the file by hand or remove it and run changesets init")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s = %v in %s config", key, value.Parsed, scope), path)
	return nil
}

// configSetTarget picks the file config set writes: --user, then --config,
// then the project config under the workspace root.
func configSetTarget(cmd *cobra.Command) (scope, path string, err error) {
	if boolFlag(cmd, "user") {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", "", clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config")
		}
		return "user", path, nil
	}
	if path := stringFlag(cmd, "config"); path != "" {
		return "project", path, nil
	}
	root, err := resolveRoot(cmd)
	if err != nil {
		return "", "", err
	}
	return "project", config.ProjectConfigPath(root), nil
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}

	result, err := config.MigrateProjectConfig(root, boolFlag(cmd, "dry-run"))
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating configuration",
			"Check that "+config.LegacyProjectConfigPath(root)+" is valid JSON")
	}

	out := cmd.OutOrStdout()
	if !result.Success {
		fmt.Fprintln(out, result.Message)
		return nil
	}
	output.PrintSuccess(out, result.Message, "")
	if result.BackupPath != "" {
		fmt.Fprintf(out, "  Original kept at %s\n", result.BackupPath)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if userPath, err := config.UserConfigPath(); err == nil {
		printConfigPath(out, "user", userPath)
	}
	project := stringFlag(cmd, "config")
	if project == "" {
		project = config.ProjectConfigPath(root)
	}
	printConfigPath(out, "project", project)
	return nil
}

func printConfigPath(w io.Writer, label, path string) {
	state := color.New(color.Faint).Sprint("(missing)")
	if fileExists(path) {
		state = color.New(color.FgGreen).Sprint("(exists)")
	}
	fmt.Fprintf(w, "%-8s %s %s\n", label+":", path, state)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
