package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ariel-frischer/changesets/internal/config"
	clierrors "github.com/ariel-frischer/changesets/internal/errors"
	"github.com/ariel-frischer/changesets/internal/git"
	"github.com/ariel-frischer/changesets/internal/logging"
	"github.com/ariel-frischer/changesets/internal/progress"
	"github.com/ariel-frischer/changesets/internal/store"
	"github.com/ariel-frischer/changesets/internal/workspace"
)

// app carries what a command needs once flags and configuration are resolved.
type app struct {
	cfg    *config.Configuration
	root   string
	logger *zap.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// interactive is true when prompts can be shown.
	interactive bool
	verbose     bool
}

// resolveRoot returns the workspace root named by --dir.
func resolveRoot(cmd *cobra.Command) (string, error) {
	root, err := git.WorkspaceRoot(stringFlag(cmd, "dir"))
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Prerequisite, "resolving workspace root",
			"Pass the workspace root explicitly with --dir <path>")
	}
	return root, nil
}

// newApp resolves the workspace root, loads configuration and builds the
// logger for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	root, err := resolveRoot(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir:        root,
		ProjectConfigPath: stringFlag(cmd, "config"),
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}

	verbose := boolFlag(cmd, "verbose")
	level := logging.Resolve(cfg.LogLevel, boolFlag(cmd, "debug"), verbose)
	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	git.SetDebugLogger(logger.Sugar().Debugf)

	logger.Debug("configuration loaded",
		zap.String("root", root),
		zap.String("changeset_dir", cfg.ChangesetDir),
		zap.String("workspace", cfg.Workspace),
		zap.String("changeset_dir_source", string(cfg.Source("changeset_dir"))),
	)

	return &app{
		cfg:         cfg,
		root:        root,
		logger:      logger,
		in:          cmd.InOrStdin(),
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		interactive: isTerminalPair(cmd.InOrStdin(), cmd.OutOrStdout()),
		verbose:     verbose,
	}, nil
}

// isTerminalPair reports whether in and out are the process's own terminal.
func isTerminalPair(in io.Reader, out io.Writer) bool {
	return in == os.Stdin && out == os.Stdout && progress.IsInteractive()
}

// store opens the configured changeset directory.
func (a *app) store() *store.Store {
	return store.New(nil, a.cfg.ChangesetPath(a.root))
}

// spinner draws to stderr when it is a terminal and stays silent otherwise.
func (a *app) spinner() *progress.Spinner {
	var caps progress.TerminalCapabilities
	if f, ok := a.errOut.(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}
	return progress.NewSpinner(a.errOut, caps)
}

// inspect detects the workspace layout and lists its packages.
func (a *app) inspect(ctx context.Context) (workspace.Snapshot, error) {
	kind, err := workspace.ParseKind(a.cfg.Workspace)
	if err != nil {
		return workspace.Snapshot{}, clierrors.ConfigInvalid(err)
	}

	inspector, err := workspace.Detect(nil, a.root, kind)
	if err != nil {
		if errors.Is(err, workspace.ErrNoWorkspace) {
			return workspace.Snapshot{}, clierrors.NoWorkspace(a.root, err)
		}
		return workspace.Snapshot{}, clierrors.WorkspaceInspectionFailed(err)
	}

	sp := a.spinner()
	sp.Start("Reading workspace packages")
	snap, err := inspector.Inspect(ctx)
	if err != nil {
		sp.Fail("Reading workspace packages failed")
		return workspace.Snapshot{}, clierrors.WorkspaceInspectionFailed(err)
	}
	sp.Success(fmt.Sprintf("Found %d packages (%s workspace)", len(snap.Packages), snap.Kind))

	a.logger.Debug("workspace inspected",
		zap.String("kind", string(snap.Kind)),
		zap.String("root", snap.Root),
		zap.Strings("packages", snap.Packages),
	)

	if len(snap.Packages) == 0 {
		return workspace.Snapshot{}, clierrors.NoPackages(a.root)
	}
	return snap, nil
}
