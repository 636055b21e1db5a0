package selector

import "context"

// Static answers every question from fixed lists, for scripted use
// (changesets add --major a --minor b --patch c -m "summary").
// The touched packages are the union of the three lists.
type Static struct {
	Major   []string
	Minor   []string
	Patch   []string
	Message string
}

// Select implements Provider.
func (s *Static) Select(ctx context.Context, step Step, candidates []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch step {
	case StepPackages:
		return s.Touched(), nil
	case StepMajor:
		return s.Major, nil
	case StepMinor:
		return s.Minor, nil
	default:
		return nil, nil
	}
}

// Summary implements Provider.
func (s *Static) Summary(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Message, nil
}

// Touched returns the union of all lists in first-seen order.
func (s *Static) Touched() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{s.Major, s.Minor, s.Patch} {
		for _, pkg := range list {
			if !seen[pkg] {
				seen[pkg] = true
				out = append(out, pkg)
			}
		}
	}
	return out
}

// IsEmpty returns true if no package was given.
func (s *Static) IsEmpty() bool {
	return len(s.Major) == 0 && len(s.Minor) == 0 && len(s.Patch) == 0
}
