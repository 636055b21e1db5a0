package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ariel-frischer/changesets/internal/bump"
	"github.com/ariel-frischer/changesets/internal/changeset"
	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/humanid"
	"github.com/ariel-frischer/changesets/internal/output"
	"github.com/ariel-frischer/changesets/internal/prompt"
	"github.com/ariel-frischer/changesets/internal/selector"
	"github.com/ariel-frischer/changesets/internal/store"
	"github.com/ariel-frischer/changesets/internal/workspace"
)

// maxIDAttempts bounds how often a colliding changeset id is regenerated.
const maxIDAttempts = 5

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Create a changeset (a)",
	Long: `Create a changeset describing which packages to release and how.

Without flags, changesets asks three questions in a terminal:
  1. Which packages the change touches
  2. Which of them need a major bump
  3. Which of the rest need a minor bump (everything left is a patch)
and then for a one-line summary.

With --major, --minor, --patch or -m the questions are answered from the flags
instead, which works without a terminal. The changeset is written to
.changeset/<id>.md under a freshly generated id.`,
	Example: `  # Interactive
  changesets add

  # Scripted
  changesets add --major core --minor cli,web -m "Drop the v1 wire format"

  # Record a change that releases nothing
  changesets add --empty -m "Update CI"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.GroupID = GroupChangesets
	addAddFlags(addCmd)
	rootCmd.AddCommand(addCmd)
}

// addAddFlags registers the add flags. The root command carries them too,
// since running changesets without a subcommand adds a changeset.
func addAddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("major", nil, "Packages to release as major (comma-separated or repeated)")
	cmd.Flags().StringSlice("minor", nil, "Packages to release as minor (comma-separated or repeated)")
	cmd.Flags().StringSlice("patch", nil, "Packages to release as patch (comma-separated or repeated)")
	cmd.Flags().StringP("message", "m", "", "Changeset summary")
	cmd.Flags().Bool("empty", false, "Create a changeset that releases no packages")
	cmd.Flags().String("workspace", "", "Workspace kind: auto, cargo, go, npm or bazel (default from config)")
}

// addOptions are the parsed add flags.
type addOptions struct {
	static selector.Static
	empty  bool
}

func readAddOptions(cmd *cobra.Command) addOptions {
	return addOptions{
		static: selector.Static{
			Major:   stringSliceFlag(cmd, "major"),
			Minor:   stringSliceFlag(cmd, "minor"),
			Patch:   stringSliceFlag(cmd, "patch"),
			Message: stringFlag(cmd, "message"),
		},
		empty: boolFlag(cmd, "empty"),
	}
}

// scripted reports whether the flags answer the questions.
func (o addOptions) scripted() bool {
	return !o.static.IsEmpty() || o.static.Message != "" || o.empty
}

func runAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if kind := stringFlag(cmd, "workspace"); kind != "" {
		parsed, err := workspace.ParseKind(kind)
		if err != nil {
			return clierrors.InvalidFlagValue("workspace", kind, workspaceKindNames())
		}
		a.cfg.Workspace = string(parsed)
	}
	return a.add(cmd.Context(), readAddOptions(cmd))
}

func workspaceKindNames() []string {
	names := []string{string(workspace.KindAuto)}
	for _, k := range workspace.Kinds() {
		names = append(names, string(k))
	}
	return names
}

// add builds a changeset from opts or the terminal and writes it.
func (a *app) add(ctx context.Context, opts addOptions) error {
	cs, confirm, err := a.buildChangeset(ctx, opts)
	if err != nil {
		return err
	}
	if cs.IsEmpty() && !opts.empty {
		return clierrors.EmptyChangeset()
	}

	if confirm != nil {
		defer confirm.Close()
		if !a.cfg.SkipConfirmations {
			printPlan(a.out, cs)
			ok, err := confirm.Confirm(ctx, "Is this your desired changeset?", true)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(a.out, "Changeset discarded.")
				return nil
			}
		}
	}

	content := changeset.Encode(cs)
	path, err := a.writeChangeset(ctx, content)
	if err != nil {
		return err
	}

	a.logger.Info("changeset written", zap.String("path", path), zap.Int("releases", len(cs.Releases)))
	output.PrintSuccess(a.out, "Created changeset", path)
	if a.verbose {
		fmt.Fprintf(a.out, "\n%s", content)
	}
	return nil
}

// buildChangeset runs the selector. The returned terminal is non-nil when the
// answers came from prompts.
func (a *app) buildChangeset(ctx context.Context, opts addOptions) (changeset.Changeset, *prompt.Terminal, error) {
	if opts.empty && opts.static.IsEmpty() {
		return changeset.New(opts.static.Message), nil, nil
	}

	var (
		provider selector.Provider
		term     *prompt.Terminal
	)
	if opts.scripted() {
		static := opts.static
		provider = &static
	} else {
		if !a.interactive {
			return changeset.Changeset{}, nil, clierrors.NotATerminal()
		}
		term = prompt.New(a.in, a.out)
		provider = term
	}

	snap, err := a.inspect(ctx)
	if err != nil {
		return changeset.Changeset{}, nil, err
	}

	cs, err := selector.New(provider).Create(ctx, snap)
	if err != nil {
		return changeset.Changeset{}, nil, selectionError(err, snap)
	}
	return *cs, term, nil
}

// selectionError maps selector failures to CLI errors. Cancellation passes
// through unchanged.
func selectionError(err error, snap workspace.Snapshot) error {
	var (
		unknown    *selector.UnknownPackageError
		notTouched *selector.MajorNotTouchedError
	)
	switch {
	case errors.As(err, &unknown):
		return clierrors.UnknownPackages(unknown.Packages, snap.Packages, err)
	case errors.As(err, &notTouched):
		return clierrors.MajorNotSelected(notTouched.Packages, err)
	default:
		return err
	}
}

// writeChangeset stores content under a new id, regenerating the id when it
// is already taken.
func (a *app) writeChangeset(ctx context.Context, content string) (string, error) {
	style, err := humanid.ParseStyle(a.cfg.IDStyle)
	if err != nil {
		return "", clierrors.ConfigInvalid(err)
	}
	gen := humanid.Generator{Style: style, Words: a.cfg.IDWords}
	s := a.store()

	var lastPath string
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := gen.New()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "generating changeset id")
		}

		path, err := s.Write(ctx, id, content)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, store.ErrExist) {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "writing changeset",
				fmt.Sprintf("Check that %s is writable", s.Dir()))
		}

		lastPath = s.Path(id)
		a.logger.Debug("changeset id taken", zap.String("id", id), zap.Int("attempt", attempt))
	}
	return "", clierrors.ChangesetExists(lastPath, store.ErrExist)
}

// printPlan lists the releases of cs by bump kind, highest first.
func printPlan(w io.Writer, cs changeset.Changeset) {
	fmt.Fprintln(w)
	output.PrintHeading(w, "Summary of changeset")

	for _, kind := range bump.All() {
		var names []string
		for _, r := range cs.Releases {
			if r.Kind == kind {
				names = append(names, r.Package)
			}
		}
		if len(names) == 0 {
			continue
		}
		paint := output.BumpColor(kind.String())
		fmt.Fprintf(w, "  %s  %s\n", paint(fmt.Sprintf("%-5s", kind)), strings.Join(names, ", "))
	}
	if cs.IsEmpty() {
		fmt.Fprintln(w, "  (no releases)")
	}
	if cs.Summary != "" {
		fmt.Fprintf(w, "\n  %s\n", cs.Summary)
	}
}
