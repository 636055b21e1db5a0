// Package pending loads the changesets waiting in a store and summarizes the
// bump each package will receive.
package pending

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/changesets/internal/bump"
	"github.com/ariel-frischer/changesets/internal/changeset"
	"github.com/ariel-frischer/changesets/internal/store"
)

// maxConcurrentReads bounds the number of files decoded at once.
const maxConcurrentReads = 8

// Entry is one decoded changeset file.
type Entry struct {
	ID        string
	Path      string
	Changeset changeset.Changeset
}

// FileError annotates a load failure with the changeset it came from.
type FileError struct {
	ID   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Load reads and decodes every changeset in s, returning entries in id
// order. The first failure cancels the remaining reads.
func Load(ctx context.Context, s *store.Store) ([]Entry, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, id := range ids {
		g.Go(func() error {
			entry, err := load(ctx, s, id)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Check decodes every changeset in s and returns one FileError per file whose
// text does not decode. Unlike Load it does not stop at such files; a file
// that cannot be read still aborts the check.
func Check(ctx context.Context, s *store.Store) ([]Entry, []*FileError, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, len(ids))
	failures := make([]*FileError, len(ids))

	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)
	for i, id := range ids {
		g.Go(func() error {
			entry, err := load(ctx, s, id)
			if err != nil {
				var fe *FileError
				if !errors.As(err, &fe) || !changeset.IsDecodeError(fe.Err) {
					return err
				}
				failures[i] = fe
				return nil
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var ok []Entry
	var failed []*FileError
	for i := range ids {
		if failures[i] != nil {
			failed = append(failed, failures[i])
			continue
		}
		ok = append(ok, entries[i])
	}
	return ok, failed, nil
}

func load(ctx context.Context, s *store.Store, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	path := s.Path(id)
	data, err := s.Read(ctx, id)
	if err != nil {
		return Entry{}, &FileError{ID: id, Path: path, Err: err}
	}
	cs, err := changeset.Decode(string(data))
	if err != nil {
		return Entry{}, &FileError{ID: id, Path: path, Err: err}
	}
	return Entry{ID: id, Path: path, Changeset: *cs}, nil
}

// PackageBump is the combined bump for one package.
type PackageBump struct {
	Package string
	Kind    bump.Kind
	// IDs are the changesets releasing the package, in id order.
	IDs []string
}

// Summarize folds entries into one bump per package: the highest kind any
// changeset asks for. Packages are sorted by descending kind, then name.
func Summarize(entries []Entry) []PackageBump {
	byPkg := make(map[string]*PackageBump)
	for _, e := range entries {
		for _, r := range e.Changeset.Releases {
			pb, ok := byPkg[r.Package]
			if !ok {
				pb = &PackageBump{Package: r.Package}
				byPkg[r.Package] = pb
			}
			pb.Kind = bump.Max(pb.Kind, r.Kind)
			pb.IDs = append(pb.IDs, e.ID)
		}
	}

	out := make([]PackageBump, 0, len(byPkg))
	for _, pb := range byPkg {
		out = append(out, *pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := bump.Compare(out[i].Kind, out[j].Kind); c != 0 {
			return c > 0
		}
		return out[i].Package < out[j].Package
	})
	return out
}
