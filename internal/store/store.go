// Package store keeps changeset files in the reserved changeset directory.
package store

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

const (
	// DefaultDir is the changeset directory relative to the workspace root.
	DefaultDir = ".changeset"

	// Ext is the changeset file extension.
	Ext = ".md"

	// ReadmeFile is created by Init and never listed as a changeset.
	ReadmeFile = "README.md"
)

var (
	// ErrExist is returned by Write when a changeset with the id exists.
	ErrExist = errors.New("changeset already exists")

	// ErrNotFound is returned by Read for an unknown id.
	ErrNotFound = errors.New("changeset not found")

	// ErrInvalidID is returned for ids that are empty or contain a path
	// separator.
	ErrInvalidID = errors.New("invalid changeset id")
)

// Store reads and writes <dir>/<id>.md files.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a store over dir. A nil fs uses the OS filesystem.
func New(fs afero.Fs, dir string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, dir: filepath.Clean(dir)}
}

// Dir returns the changeset directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+Ext)
}

// Write creates the changeset file for id with content and returns its path.
// Existing files are never overwritten.
func (s *Store) Write(ctx context.Context, id, content string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", s.dir, err)
	}

	path := s.Path(id)
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExist, path)
		}
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// List returns the ids of all changesets in the directory, sorted.
// A missing directory holds no changesets.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == ReadmeFile || !strings.HasSuffix(name, Ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, Ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// Read returns the contents of the changeset file for id.
func (s *Store) Read(ctx context.Context, id string) ([]byte, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(id)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Init creates the directory and its README. Files already present are left
// untouched; the returned paths are the ones created.
func (s *Store) Init(ctx context.Context, files map[string]string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var created []string
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		exists, err := afero.Exists(s.fs, path)
		if err != nil {
			return created, fmt.Errorf("checking %s: %w", path, err)
		}
		if exists {
			continue
		}
		if err := afero.WriteFile(s.fs, path, []byte(files[name]), 0o644); err != nil {
			return created, fmt.Errorf("writing %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}

func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
