package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// cargoManifest holds the parts of Cargo.toml the inspector needs.
type cargoManifest struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

// CargoInspector lists the crates of a Cargo workspace: the root package, if
// any, plus every member matched by [workspace].members.
type CargoInspector struct {
	FS   afero.Fs
	Root string
}

// Inspect implements Inspector.
func (c *CargoInspector) Inspect(ctx context.Context) (Snapshot, error) {
	root, err := readCargoManifest(c.FS, filepath.Join(c.Root, "Cargo.toml"))
	if err != nil {
		return Snapshot{}, err
	}

	var names []string
	if root.Package != nil {
		names = append(names, root.Package.Name)
	}

	if root.Workspace != nil {
		dirs, err := expandMembers(ctx, c.FS, c.Root, "Cargo.toml", root.Workspace.Members, root.Workspace.Exclude)
		if err != nil {
			return Snapshot{}, err
		}
		for _, dir := range dirs {
			member, err := readCargoManifest(c.FS, filepath.Join(dir, "Cargo.toml"))
			if err != nil {
				return Snapshot{}, err
			}
			// Virtual manifests nested in members carry no package.
			if member.Package != nil {
				names = append(names, member.Package.Name)
			}
		}
	}

	return newSnapshot(KindCargo, c.Root, names), nil
}

func readCargoManifest(fs afero.Fs, path string) (*cargoManifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
