// Package selector turns a workspace's package list and a series of
// selections into the releases of a new changeset.
//
// Selections come from a Provider: an interactive terminal prompt or a fixed
// set of answers. The bucketing itself (Bucket) is a pure function so it can
// be tested without any interaction.
package selector

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/changesets/internal/bump"
	"github.com/ariel-frischer/changesets/internal/changeset"
	"github.com/ariel-frischer/changesets/internal/workspace"
)

// Step identifies one of the selection questions.
type Step int

const (
	// StepPackages asks which packages the changeset touches at all.
	StepPackages Step = iota + 1
	// StepMajor asks which packages get a major bump.
	StepMajor
	// StepMinor asks which of the remaining touched packages get a minor
	// bump; the rest are patched.
	StepMinor
)

// Prompt returns the question shown to the user for the step.
func (s Step) Prompt() string {
	switch s {
	case StepPackages:
		return "What packages would you like to create a changeset for?"
	case StepMajor:
		return "What packages should have a major bump?"
	case StepMinor:
		return "What packages should have a minor bump?"
	default:
		return ""
	}
}

func (s Step) String() string {
	switch s {
	case StepPackages:
		return "packages"
	case StepMajor:
		return "major packages"
	case StepMinor:
		return "minor packages"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// SummaryPrompt is the question asking for the changeset summary.
const SummaryPrompt = "What is the summary of your changes?"

// Provider answers selection questions. Implementations may block waiting
// for input and must return an error wrapping ErrCancelled when the input is
// abandoned or ctx is done.
type Provider interface {
	// Select returns the chosen subset of candidates for step.
	Select(ctx context.Context, step Step, candidates []string) ([]string, error)
	// Summary returns the free-text summary. An empty summary is valid.
	Summary(ctx context.Context) (string, error)
}

// Selector builds changesets from Provider answers.
type Selector struct {
	Provider Provider
}

// New creates a Selector backed by p.
func New(p Provider) *Selector {
	return &Selector{Provider: p}
}

// Create asks for the touched packages, the major packages, then (when any
// touched package is left) the minor packages, and finally the summary.
// Any failure aborts the whole operation; no partial changeset is returned.
func (s *Selector) Create(ctx context.Context, snap workspace.Snapshot) (*changeset.Changeset, error) {
	candidates := snap.Packages

	touched, err := s.selectStep(ctx, StepPackages, candidates)
	if err != nil {
		return nil, err
	}

	majors, err := s.selectStep(ctx, StepMajor, candidates)
	if err != nil {
		return nil, err
	}
	if err := checkSubset(candidates, touched, majors); err != nil {
		return nil, err
	}

	var minors []string
	if remaining := difference(ordered(candidates, touched), majors); len(remaining) > 0 {
		minors, err = s.selectStep(ctx, StepMinor, remaining)
		if err != nil {
			return nil, err
		}
	}

	releases, err := Bucket(candidates, touched, majors, minors)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	summary, err := s.Provider.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}

	cs := changeset.New(summary, releases...)
	return &cs, nil
}

func (s *Selector) selectStep(ctx context.Context, step Step, candidates []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	selected, err := s.Provider.Select(ctx, step, candidates)
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", step, err)
	}
	return selected, nil
}

// Bucket assigns a bump kind to every touched package: majors get Major,
// touched non-major packages listed in minors get Minor and every other
// touched package gets Patch. Releases are ordered by bucket (major, minor,
// patch) and by candidate order within a bucket.
//
// Every selection must name candidates, and majors must be touched. Minors
// that are also majors or not touched are ignored, so overlapping selections
// resolve to the highest kind.
func Bucket(candidates, touched, majors, minors []string) ([]changeset.Release, error) {
	if err := checkSubset(candidates, touched, majors); err != nil {
		return nil, err
	}
	if err := checkKnown(candidates, minors); err != nil {
		return nil, err
	}

	majorSet := toSet(majors)
	touchedSet := toSet(touched)
	minorSet := toSet(minors)

	var major, minor, patch []changeset.Release
	for _, pkg := range candidates {
		switch {
		case majorSet[pkg]:
			major = append(major, changeset.Release{Package: pkg, Kind: bump.Major})
		case !touchedSet[pkg]:
			continue
		case minorSet[pkg]:
			minor = append(minor, changeset.Release{Package: pkg, Kind: bump.Minor})
		default:
			patch = append(patch, changeset.Release{Package: pkg, Kind: bump.Patch})
		}
	}

	releases := make([]changeset.Release, 0, len(major)+len(minor)+len(patch))
	releases = append(releases, major...)
	releases = append(releases, minor...)
	releases = append(releases, patch...)
	return releases, nil
}

func checkSubset(candidates, touched, majors []string) error {
	if err := checkKnown(candidates, touched); err != nil {
		return err
	}
	if err := checkKnown(candidates, majors); err != nil {
		return err
	}

	touchedSet := toSet(touched)
	var missing []string
	for _, pkg := range ordered(candidates, majors) {
		if !touchedSet[pkg] {
			missing = append(missing, pkg)
		}
	}
	if len(missing) > 0 {
		return &MajorNotTouchedError{Packages: missing}
	}
	return nil
}

func checkKnown(candidates, selected []string) error {
	known := toSet(candidates)
	var unknown []string
	for _, pkg := range selected {
		if !known[pkg] {
			unknown = append(unknown, pkg)
		}
	}
	if len(unknown) > 0 {
		return &UnknownPackageError{Packages: unknown}
	}
	return nil
}

// ordered returns the members of selected in candidate order, deduplicated.
func ordered(candidates, selected []string) []string {
	set := toSet(selected)
	out := make([]string, 0, len(selected))
	for _, pkg := range candidates {
		if set[pkg] {
			out = append(out, pkg)
		}
	}
	return out
}

func difference(a, b []string) []string {
	drop := toSet(b)
	out := make([]string, 0, len(a))
	for _, pkg := range a {
		if !drop[pkg] {
			out = append(out, pkg)
		}
	}
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
