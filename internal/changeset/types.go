package changeset

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/changesets/internal/bump"
)

// Release is a single bump intent for one package.
type Release struct {
	Package string    `yaml:"package"`
	Kind    bump.Kind `yaml:"kind"`
}

func (r Release) String() string {
	return fmt.Sprintf("%s: %s", r.Package, r.Kind)
}

// Changeset is a summary plus an ordered list of releases.
// Release order only affects encoding; a package appears at most once.
type Changeset struct {
	Summary  string
	Releases []Release
}

// New builds a Changeset from releases, trimming the summary.
// A package repeated in releases keeps its first position and takes the last
// kind given for it.
func New(summary string, releases ...Release) Changeset {
	c := Changeset{Summary: strings.TrimSpace(summary)}
	for _, r := range releases {
		c = c.With(r.Package, r.Kind)
	}
	return c
}

// With returns a copy of c in which pkg is released with kind.
// An existing entry for pkg is replaced in place; otherwise the release is
// appended.
func (c Changeset) With(pkg string, kind bump.Kind) Changeset {
	releases := make([]Release, 0, len(c.Releases)+1)
	replaced := false
	for _, r := range c.Releases {
		if r.Package == pkg {
			r.Kind = kind
			replaced = true
		}
		releases = append(releases, r)
	}
	if !replaced {
		releases = append(releases, Release{Package: pkg, Kind: kind})
	}
	return Changeset{Summary: c.Summary, Releases: releases}
}

// Release returns the kind recorded for pkg.
func (c Changeset) Release(pkg string) (bump.Kind, bool) {
	for _, r := range c.Releases {
		if r.Package == pkg {
			return r.Kind, true
		}
	}
	return 0, false
}

// Packages returns the released package names in release order.
func (c Changeset) Packages() []string {
	names := make([]string, 0, len(c.Releases))
	for _, r := range c.Releases {
		names = append(names, r.Package)
	}
	return names
}

// IsEmpty returns true if the changeset releases no packages.
func (c Changeset) IsEmpty() bool {
	return len(c.Releases) == 0
}

// Validate checks the invariants every changeset must satisfy: package
// names are non-empty and unique, and kinds are valid.
func (c Changeset) Validate() error {
	seen := make(map[string]bool, len(c.Releases))
	for i, r := range c.Releases {
		if r.Package == "" {
			return fmt.Errorf("releases[%d]: package name is empty", i)
		}
		if !r.Kind.Valid() {
			return fmt.Errorf("releases[%d]: invalid bump kind for %q", i, r.Package)
		}
		if seen[r.Package] {
			return &DuplicatePackageError{Package: r.Package}
		}
		seen[r.Package] = true
	}
	return nil
}
