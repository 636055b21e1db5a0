package changeset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFrontmatter means the text does not start with "---\n".
	ErrMissingFrontmatter = errors.New("changeset does not start with a frontmatter delimiter")

	// ErrUnterminatedFrontmatter means no closing "---\n" line follows the opening one.
	ErrUnterminatedFrontmatter = errors.New("changeset frontmatter is not terminated")

	// ErrMalformedMetadata is matched by MetadataError and DuplicatePackageError.
	ErrMalformedMetadata = errors.New("malformed changeset metadata")
)

// MetadataError reports frontmatter that is not a mapping of package names
// to bump kinds. Err carries the underlying YAML diagnostic when there is one.
type MetadataError struct {
	Line    int
	Message string
	Err     error
}

func (e *MetadataError) Error() string {
	var msg string
	switch {
	case e.Err != nil && e.Message != "":
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		msg = e.Err.Error()
	default:
		msg = e.Message
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrMalformedMetadata, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedMetadata, msg)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

// DuplicatePackageError reports a package released twice in one changeset.
type DuplicatePackageError struct {
	Package string
	Line    int
}

func (e *DuplicatePackageError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: package %q is listed more than once", ErrMalformedMetadata, e.Line, e.Package)
	}
	return fmt.Sprintf("%s: package %q is listed more than once", ErrMalformedMetadata, e.Package)
}

func (e *DuplicatePackageError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

// IsDecodeError returns true if err came from decoding changeset text.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMissingFrontmatter) ||
		errors.Is(err, ErrUnterminatedFrontmatter) ||
		errors.Is(err, ErrMalformedMetadata) ||
		isUnrecognizedKind(err)
}
