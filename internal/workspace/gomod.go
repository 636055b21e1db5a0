package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
)

// GoInspector lists module paths of a Go workspace. With a go.work file every
// used module is listed; otherwise the single go.mod at the root.
type GoInspector struct {
	FS   afero.Fs
	Root string
}

// Inspect implements Inspector.
func (g *GoInspector) Inspect(ctx context.Context) (Snapshot, error) {
	workPath := filepath.Join(g.Root, "go.work")

	ok, err := afero.Exists(g.FS, workPath)
	if err != nil {
		return Snapshot{}, err
	}
	if !ok {
		name, err := g.modulePath(g.Root)
		if err != nil {
			return Snapshot{}, err
		}
		return newSnapshot(KindGo, g.Root, []string{name}), nil
	}

	data, err := afero.ReadFile(g.FS, workPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading %s: %w", workPath, err)
	}
	work, err := modfile.ParseWork(workPath, data, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing %s: %w", workPath, err)
	}

	names := make([]string, 0, len(work.Use))
	for _, use := range work.Use {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
		dir := filepath.FromSlash(use.Path)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(g.Root, dir)
		}
		name, err := g.modulePath(dir)
		if err != nil {
			return Snapshot{}, err
		}
		names = append(names, name)
	}

	return newSnapshot(KindGo, g.Root, names), nil
}

func (g *GoInspector) modulePath(dir string) (string, error) {
	path := filepath.Join(dir, "go.mod")
	data, err := afero.ReadFile(g.FS, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	name := modfile.ModulePath(data)
	if name == "" {
		return "", fmt.Errorf("%s has no module directive", path)
	}
	return name, nil
}
