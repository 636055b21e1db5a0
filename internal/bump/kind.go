// Package bump defines the semantic-version bump kinds a changeset can
// request for a package: major, minor and patch.
//
// Kinds are totally ordered (Major > Minor > Patch) so that callers combining
// several intents for the same package can pick the highest one with Max.
package bump

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind is a semantic-version bump category. The zero value is not a valid Kind.
type Kind int

const (
	// Patch is a backwards compatible bug fix.
	Patch Kind = iota + 1
	// Minor is a backwards compatible feature addition.
	Minor
	// Major is a breaking change.
	Major
)

// ErrUnrecognized is matched by every UnrecognizedError.
var ErrUnrecognized = errors.New("unrecognized bump kind")

// UnrecognizedError reports a bump token that is not one of the canonical
// lowercase forms.
type UnrecognizedError struct {
	Value string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized bump kind %q (expected: major, minor or patch)", e.Value)
}

// Is lets errors.Is(err, ErrUnrecognized) match any UnrecognizedError.
func (e *UnrecognizedError) Is(target error) bool {
	return target == ErrUnrecognized
}

// Parse converts a canonical token ("major", "minor", "patch") to a Kind.
// Matching is exact: "Major" or " minor" are rejected.
func Parse(s string) (Kind, error) {
	switch s {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	default:
		return 0, &UnrecognizedError{Value: s}
	}
}

// String returns the canonical lowercase token.
func (k Kind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of Major, Minor or Patch.
func (k Kind) Valid() bool {
	return k >= Patch && k <= Major
}

// All returns every Kind in precedence order, highest first.
func All() []Kind {
	return []Kind{Major, Minor, Patch}
}

// Compare returns -1 if a ranks below b, 0 if equal and +1 if a ranks above b.
func Compare(a, b Kind) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Max returns the highest-precedence Kind among kinds.
// It returns the zero Kind when kinds is empty.
func Max(kinds ...Kind) Kind {
	var highest Kind
	for _, k := range kinds {
		if k > highest {
			highest = k
		}
	}
	return highest
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid bump kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (interface{}, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid bump kind %d", int(k))
	}
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Only scalar nodes are accepted.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bump kind must be a scalar", node.Line)
	}
	return k.UnmarshalText([]byte(node.Value))
}
