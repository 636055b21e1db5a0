// Package workspace discovers the packages of a multi-package project.
//
// An Inspector reads the project manifests once and returns an immutable
// Snapshot of package names. Supported layouts:
//   - cargo: Cargo.toml [workspace] members and [package] name
//   - go:    go.work use directives, or a single go.mod
//   - npm:   package.json workspaces or pnpm-workspace.yaml
//   - bazel: MODULE.bazel module() plus local_path_override() modules
//
// All inspectors read through an afero.Fs so tests can run on an in-memory
// filesystem.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Kind names a workspace layout.
type Kind string

const (
	KindAuto  Kind = "auto"
	KindCargo Kind = "cargo"
	KindGo    Kind = "go"
	KindNPM   Kind = "npm"
	KindBazel Kind = "bazel"
)

// ErrNoWorkspace means no supported manifest was found at the root.
var ErrNoWorkspace = errors.New("no supported workspace manifest found")

// Kinds returns the concrete layouts in detection order.
func Kinds() []Kind {
	return []Kind{KindCargo, KindGo, KindNPM, KindBazel}
}

// ParseKind validates a layout name. The empty string means auto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindCargo, KindGo, KindNPM, KindBazel:
		return k, nil
	default:
		return "", fmt.Errorf("unknown workspace kind %q (valid: auto, cargo, go, npm, bazel)", s)
	}
}

// Snapshot is the set of package names found in a workspace.
// Packages is sorted and free of duplicates.
type Snapshot struct {
	Kind     Kind
	Root     string
	Packages []string
}

// Inspector produces a Snapshot of a workspace.
type Inspector interface {
	Inspect(ctx context.Context) (Snapshot, error)
}

// Detect returns the inspector for kind rooted at root. With KindAuto the
// first layout whose manifest exists wins, in the order of Kinds.
func Detect(fs afero.Fs, root string, kind Kind) (Inspector, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if kind != KindAuto && kind != "" {
		return newInspector(fs, root, kind)
	}

	for _, k := range Kinds() {
		for _, manifest := range manifests(k) {
			ok, err := afero.Exists(fs, filepath.Join(root, manifest))
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", manifest, err)
			}
			if ok {
				return newInspector(fs, root, k)
			}
		}
	}

	return nil, fmt.Errorf("%w in %s", ErrNoWorkspace, root)
}

func newInspector(fs afero.Fs, root string, kind Kind) (Inspector, error) {
	switch kind {
	case KindCargo:
		return &CargoInspector{FS: fs, Root: root}, nil
	case KindGo:
		return &GoInspector{FS: fs, Root: root}, nil
	case KindNPM:
		return &NPMInspector{FS: fs, Root: root}, nil
	case KindBazel:
		return &BazelInspector{FS: fs, Root: root}, nil
	default:
		return nil, fmt.Errorf("unknown workspace kind %q", kind)
	}
}

func manifests(kind Kind) []string {
	switch kind {
	case KindCargo:
		return []string{"Cargo.toml"}
	case KindGo:
		return []string{"go.work", "go.mod"}
	case KindNPM:
		return []string{"pnpm-workspace.yaml", "package.json"}
	case KindBazel:
		return []string{"MODULE.bazel"}
	default:
		return nil
	}
}

// newSnapshot sorts and deduplicates names, dropping empty ones.
func newSnapshot(kind Kind, root string, names []string) Snapshot {
	set := make(map[string]bool, len(names))
	packages := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || set[n] {
			continue
		}
		set[n] = true
		packages = append(packages, n)
	}
	sort.Strings(packages)
	return Snapshot{Kind: kind, Root: root, Packages: packages}
}

// expandMembers resolves member patterns relative to root into directories
// containing manifest. Patterns prefixed with "!" and the exclude list remove
// matches. A trailing "/**" matches every directory below the prefix.
func expandMembers(ctx context.Context, fs afero.Fs, root, manifest string, patterns, exclude []string) ([]string, error) {
	var include []string
	for _, p := range patterns {
		if strings.HasPrefix(p, "!") {
			exclude = append(exclude, strings.TrimPrefix(p, "!"))
			continue
		}
		include = append(include, p)
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, pattern := range include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches, err := globDirs(fs, root, filepath.Clean(filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("expanding member pattern %q: %w", pattern, err)
		}

		for _, dir := range matches {
			rel, err := filepath.Rel(root, dir)
			if err != nil || seen[rel] || excluded(rel, exclude) {
				continue
			}
			ok, err := afero.Exists(fs, filepath.Join(dir, manifest))
			if err != nil {
				return nil, err
			}
			if ok {
				seen[rel] = true
				dirs = append(dirs, dir)
			}
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func globDirs(fs afero.Fs, root, pattern string) ([]string, error) {
	if prefix, ok := strings.CutSuffix(pattern, string(filepath.Separator)+"**"); ok || pattern == "**" {
		if pattern == "**" {
			prefix = "."
		}
		return walkDirs(fs, filepath.Join(root, prefix))
	}
	return afero.Glob(fs, filepath.Join(root, pattern))
}

func walkDirs(fs afero.Fs, base string) ([]string, error) {
	var dirs []string
	err := afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		switch info.Name() {
		case "node_modules", "target", ".git":
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

func excluded(rel string, exclude []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range exclude {
		pattern = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(pattern)), "/**")
		if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
