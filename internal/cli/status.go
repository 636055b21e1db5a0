package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/git"
	"github.com/ariel-frischer/changesets/internal/output"
	"github.com/ariel-frischer/changesets/internal/pending"
	"github.com/ariel-frischer/changesets/internal/store"
)

const clearScreen = "\033[H\033[2J"

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the releases pending changesets add up to (st)",
	Long: `Show the releases pending changesets add up to.

Every package named by a changeset in .changeset/ is listed once, with the
highest bump any changeset asks for. With --watch the list is redrawn whenever
a changeset file is added, edited or removed.`,
	Example: `  # Show pending releases
  changesets status

  # Machine-readable output: package<TAB>kind<TAB>ids
  changesets status --plain

  # Keep the list up to date while editing changesets
  changesets status --watch`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.GroupID = GroupChangesets
	statusCmd.Flags().BoolP("watch", "w", false, "Redraw when changeset files change")
	statusCmd.Flags().Bool("plain", false, "Plain tab-separated output for scripts")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	plain := boolFlag(cmd, "plain")
	if !boolFlag(cmd, "watch") {
		return a.status(cmd.Context(), plain)
	}
	return a.watchStatus(cmd.Context(), plain)
}

// status prints the combined releases of the pending changesets.
func (a *app) status(ctx context.Context, plain bool) error {
	s := a.store()
	entries, err := pending.Load(ctx, s)
	if err != nil {
		return loadError(err)
	}

	bumps := pending.Summarize(entries)
	if plain {
		printStatusPlain(a.out, bumps)
		return nil
	}

	branch, _ := git.CurrentBranch(a.root)
	printStatus(a.out, statusView{
		dir:     s.Dir(),
		branch:  branch,
		entries: entries,
		bumps:   bumps,
		verbose: a.verbose,
	})
	return nil
}

// watchStatus redraws the status until ctx is done.
func (a *app) watchStatus(ctx context.Context, plain bool) error {
	dir := a.store().Dir()
	a.logger.Info("watching changesets", zap.String("dir", dir))

	err := pending.Watch(ctx, dir, pending.DefaultDebounce, func() {
		if !plain {
			fmt.Fprint(a.out, clearScreen)
		}
		if err := a.status(ctx, plain); err != nil {
			if cliErr := clierrors.AsCLIError(err); cliErr != nil {
				clierrors.FprintError(a.errOut, cliErr)
				return
			}
			output.PrintFailure(a.errOut, err.Error())
		}
	})
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "watching "+dir)
	}
	return nil
}

// loadError turns a pending.Load failure into a CLI error.
func loadError(err error) error {
	var fileErr *pending.FileError
	if errors.As(err, &fileErr) {
		return clierrors.InvalidChangeset(fileErr.Path, fileErr.Err)
	}
	return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading changesets")
}

type statusView struct {
	dir     string
	branch  string
	entries []pending.Entry
	bumps   []pending.PackageBump
	verbose bool
}

func printStatus(w io.Writer, v statusView) {
	title := fmt.Sprintf("Pending changesets (%d)", len(v.entries))
	if v.branch != "" {
		title += " on " + v.branch
	}
	output.PrintHeading(w, title)

	if len(v.entries) == 0 {
		fmt.Fprintf(w, "No changesets in %s\n", v.dir)
		fmt.Fprintln(w, "Create one with: changesets add")
		return
	}

	if len(v.bumps) == 0 {
		fmt.Fprintln(w, "No packages will be released.")
	}

	width := 0
	for _, b := range v.bumps {
		width = max(width, len(b.Package))
	}

	dim := color.New(color.Faint).SprintFunc()
	for _, b := range v.bumps {
		paint := output.BumpColor(b.Kind.String())
		fmt.Fprintf(w, "  %s  %-*s  %s\n",
			paint(fmt.Sprintf("%-5s", b.Kind)), width, b.Package, dim(countChangesets(len(b.IDs))))
		if v.verbose {
			for _, id := range b.IDs {
				fmt.Fprintf(w, "         %s\n", dim(id+store.Ext))
			}
		}
	}

	if empty := countEmpty(v.entries); empty > 0 {
		fmt.Fprintf(w, "\n%s\n", dim(fmt.Sprintf("%s without releases", countChangesets(empty))))
	}
}

func printStatusPlain(w io.Writer, bumps []pending.PackageBump) {
	for _, b := range bumps {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Package, b.Kind, strings.Join(b.IDs, ","))
	}
}

func countChangesets(n int) string {
	if n == 1 {
		return "1 changeset"
	}
	return fmt.Sprintf("%d changesets", n)
}

func countEmpty(entries []pending.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Changeset.IsEmpty() {
			n++
		}
	}
	return n
}
