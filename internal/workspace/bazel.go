package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bazelbuild/buildtools/build"
	"github.com/spf13/afero"
)

// BazelInspector lists the modules of a Bazel workspace: the root module
// declared by module(name = ...) and every module wired in from the same
// tree with local_path_override(module_name = ...).
type BazelInspector struct {
	FS   afero.Fs
	Root string
}

// Inspect implements Inspector.
func (b *BazelInspector) Inspect(ctx context.Context) (Snapshot, error) {
	path := filepath.Join(b.Root, "MODULE.bazel")
	data, err := afero.ReadFile(b.FS, path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := build.ParseModule(path, data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var names []string
	for _, stmt := range f.Stmt {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}

		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		ident, ok := call.X.(*build.Ident)
		if !ok {
			continue
		}

		switch ident.Name {
		case "module":
			names = append(names, stringAttr(call, "name"))
		case "local_path_override":
			names = append(names, stringAttr(call, "module_name"))
		}
	}

	snap := newSnapshot(KindBazel, b.Root, names)
	if len(snap.Packages) == 0 {
		return Snapshot{}, fmt.Errorf("%s declares no module name", path)
	}
	return snap, nil
}

func stringAttr(call *build.CallExpr, name string) string {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if !ok || lhs.Name != name {
			continue
		}
		if str, ok := assign.RHS.(*build.StringExpr); ok {
			return str.Value
		}
	}
	return ""
}
