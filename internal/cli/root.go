// Package cli implements the changesets command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/selector"
)

// Command groups shown in help output.
const (
	GroupChangesets    = "changesets"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "changesets",
	Short: "Record release intents for multi-package workspaces",
	Long: `changesets records which packages of a workspace need a release, and at what
semver level, as small Markdown files under .changeset/.

Each changeset names packages with a bump kind (major, minor or patch) and a
summary for the changelog. Running changesets without a subcommand creates a
changeset interactively, same as 'changesets add'.

Supported workspaces: Cargo, Go (go.work or go.mod), npm/pnpm and Bazel.`,
	Example: `  # Create a changeset interactively
  changesets

  # Create a changeset from flags (CI, scripts)
  changesets add --minor core --patch cli -m "Add streaming decoder"

  # See what the pending changesets add up to
  changesets status

  # Validate every changeset file
  changesets check`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAdd,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangesets, Title: "Changesets:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)
	addPersistentFlags(rootCmd)
	addAddFlags(rootCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for the list of flags", cmd.CommandPath()))
	})
}

// addPersistentFlags registers the flags shared by every command.
func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("dir", "C", "", "Workspace root (default: repository root of the current directory)")
	cmd.PersistentFlags().StringP("config", "c", "", "Project config file (default: <root>/.changeset/config.yml)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	return handleError(rootCmd.ErrOrStderr(), err)
}

// handleError prints err and returns the exit code for it.
func handleError(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, selector.ErrCancelled) {
		fmt.Fprintln(w, "Cancelled.")
		return ExitCancelled
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return exitCodeFor(cliErr.Category)
	}

	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
	return ExitRuntimeError
}

func stringFlag(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func boolFlag(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Lookup(name) == nil {
		return false
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func stringSliceFlag(cmd *cobra.Command, name string) []string {
	if cmd.Flags().Lookup(name) == nil {
		return nil
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}
