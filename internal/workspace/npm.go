package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type packageJSON struct {
	Name       string          `json:"name"`
	Workspaces json.RawMessage `json:"workspaces"`
}

type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// NPMInspector lists the packages of an npm, yarn or pnpm workspace.
// pnpm-workspace.yaml takes precedence over package.json workspaces. A root
// package.json without workspaces is a single-package project.
type NPMInspector struct {
	FS   afero.Fs
	Root string
}

// Inspect implements Inspector.
func (n *NPMInspector) Inspect(ctx context.Context) (Snapshot, error) {
	patterns, rootName, err := n.memberPatterns()
	if err != nil {
		return Snapshot{}, err
	}

	if patterns == nil {
		if rootName == "" {
			return Snapshot{}, fmt.Errorf("%s has no name and no workspaces", filepath.Join(n.Root, "package.json"))
		}
		return newSnapshot(KindNPM, n.Root, []string{rootName}), nil
	}

	dirs, err := expandMembers(ctx, n.FS, n.Root, "package.json", patterns, nil)
	if err != nil {
		return Snapshot{}, err
	}

	names := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == n.Root {
			continue
		}
		pkg, err := readPackageJSON(n.FS, filepath.Join(dir, "package.json"))
		if err != nil {
			return Snapshot{}, err
		}
		names = append(names, pkg.Name)
	}

	return newSnapshot(KindNPM, n.Root, names), nil
}

// memberPatterns returns the workspace globs, or nil when the root is a
// single package.
func (n *NPMInspector) memberPatterns() ([]string, string, error) {
	pnpmPath := filepath.Join(n.Root, "pnpm-workspace.yaml")
	ok, err := afero.Exists(n.FS, pnpmPath)
	if err != nil {
		return nil, "", err
	}
	if ok {
		data, err := afero.ReadFile(n.FS, pnpmPath)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", pnpmPath, err)
		}
		var ws pnpmWorkspace
		if err := yaml.Unmarshal(data, &ws); err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", pnpmPath, err)
		}
		if ws.Packages == nil {
			ws.Packages = []string{}
		}
		return ws.Packages, "", nil
	}

	root, err := readPackageJSON(n.FS, filepath.Join(n.Root, "package.json"))
	if err != nil {
		return nil, "", err
	}
	patterns, err := root.workspacePatterns()
	if err != nil {
		return nil, "", fmt.Errorf("parsing workspaces in %s: %w", filepath.Join(n.Root, "package.json"), err)
	}
	return patterns, root.Name, nil
}

// workspacePatterns accepts both the array form and the yarn object form
// ({"packages": [...]}).
func (p *packageJSON) workspacePatterns() ([]string, error) {
	if len(p.Workspaces) == 0 || string(p.Workspaces) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(p.Workspaces, &list); err == nil {
		return list, nil
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(p.Workspaces, &obj); err != nil {
		return nil, err
	}
	if obj.Packages == nil {
		obj.Packages = []string{}
	}
	return obj.Packages, nil
}

func readPackageJSON(fs afero.Fs, path string) (*packageJSON, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pkg, nil
}
