package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changesets/internal/config"
	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/output"
	"github.com/ariel-frischer/changesets/internal/store"
)

const changesetReadme = `# Changesets

This directory holds changesets: small Markdown files that record which
packages a change releases and at what level.

    ---
    "my-package": minor
    ---

    Add a streaming decoder

Create one with ` + "`changesets add`" + `, list what is pending with
` + "`changesets status`" + ` and validate the files with ` + "`changesets check`" + `.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the changeset directory and config",
	Long: `Create .changeset/ with a README and a commented config.yml.

Files that already exist are left untouched, so init is safe to re-run.`,
	Example: `  # Set up changesets in the current repository
  changesets init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.initialize(cmd.Context())
}

// initialize creates the changeset directory README and the project config
// file. A legacy config.json is migrated instead of writing the template.
func (a *app) initialize(ctx context.Context) error {
	s := a.store()
	created, err := s.Init(ctx, map[string]string{store.ReadmeFile: changesetReadme})
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "initializing "+s.Dir())
	}

	configPath := config.ProjectConfigPath(a.root)
	legacy := config.LegacyProjectConfigPath(a.root)
	migrated := false
	if fileExists(legacy) && !fileExists(configPath) {
		result, err := config.MigrateJSONToYAML(legacy, configPath, false)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating "+legacy)
		}
		output.PrintSuccess(a.out, result.Message, "")
		migrated = true
	} else {
		if fileExists(legacy) {
			output.PrintWarning(a.out, "Ignoring "+legacy+": "+filepath.Base(configPath)+" takes precedence")
		}
		cfgDir := store.New(nil, filepath.Dir(configPath))
		createdCfg, err := cfgDir.Init(ctx, map[string]string{filepath.Base(configPath): config.GetDefaultConfigTemplate()})
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+configPath)
		}
		created = append(created, createdCfg...)
	}

	if len(created) == 0 && !migrated {
		output.PrintSuccess(a.out, "Already initialized", s.Dir())
	}
	for _, path := range created {
		output.PrintSuccess(a.out, "Created", path)
	}
	return nil
}
