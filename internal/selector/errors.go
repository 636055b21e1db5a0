package selector

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCancelled means the user abandoned a prompt.
	ErrCancelled = errors.New("selection cancelled")

	// ErrMajorNotTouched is matched by MajorNotTouchedError.
	ErrMajorNotTouched = errors.New("major packages must be part of the changeset")

	// ErrUnknownPackage is matched by UnknownPackageError.
	ErrUnknownPackage = errors.New("unknown package")
)

// MajorNotTouchedError reports packages picked for a major bump that were not
// picked as part of the changeset.
type MajorNotTouchedError struct {
	Packages []string
}

func (e *MajorNotTouchedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMajorNotTouched, strings.Join(e.Packages, ", "))
}

func (e *MajorNotTouchedError) Is(target error) bool {
	return target == ErrMajorNotTouched
}

// UnknownPackageError reports selected names that are not workspace packages.
type UnknownPackageError struct {
	Packages []string
}

func (e *UnknownPackageError) Error() string {
	noun := "package"
	if len(e.Packages) > 1 {
		noun = "packages"
	}
	return fmt.Sprintf("unknown %s: %s", noun, strings.Join(e.Packages, ", "))
}

func (e *UnknownPackageError) Is(target error) bool {
	return target == ErrUnknownPackage
}
