package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/output"
	"github.com/ariel-frischer/changesets/internal/pending"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every changeset file",
	Long: `Decode every changeset in .changeset/ and report the files that fail.

Exits with status 1 when any changeset is invalid, so it can gate CI.`,
	Example: `  # Validate changesets
  changesets check

  # List every file, not only failures
  changesets check --verbose`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupChangesets
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.check(cmd.Context())
}

// check decodes every changeset and prints one line per failure.
func (a *app) check(ctx context.Context) error {
	entries, failures, err := pending.Check(ctx, a.store())
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading changesets")
	}

	if a.verbose {
		for _, e := range entries {
			output.PrintSuccess(a.out, e.ID, "")
		}
	}
	for _, f := range failures {
		output.PrintFailure(a.out, fmt.Sprintf("%s: %v", f.Path, f.Err))
	}

	if len(failures) > 0 {
		return clierrors.InvalidChangesets(len(failures))
	}
	output.PrintSuccess(a.out, fmt.Sprintf("%s valid", countChangesets(len(entries))), "")
	return nil
}
