// Package humanid generates changeset ids.
//
// The "human" style joins random words into adjective-...-noun-verb ids such
// as "brave-owls-sing"; the "uuid" style uses random (v4) UUIDs.
package humanid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Style selects the id format.
type Style string

const (
	StyleHuman Style = "human"
	StyleUUID  Style = "uuid"
)

const (
	// MinWords and MaxWords bound the number of words in a human id.
	MinWords = 2
	MaxWords = 5

	// DefaultWords is the number of words used when none is configured.
	DefaultWords = 3

	separator = "-"
)

// ErrInvalidStyle is returned for an unknown Style.
var ErrInvalidStyle = errors.New("invalid id style")

// ParseStyle converts a config value to a Style. Empty means human.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleHuman:
		return StyleHuman, nil
	case StyleUUID:
		return StyleUUID, nil
	default:
		return "", fmt.Errorf("%w %q (valid: %s, %s)", ErrInvalidStyle, s, StyleHuman, StyleUUID)
	}
}

// Generator creates ids of one style.
type Generator struct {
	Style Style
	// Words is the human id length; values outside [MinWords, MaxWords] are
	// clamped.
	Words int
	// Rand is the entropy source; nil means crypto/rand.
	Rand io.Reader
}

// New returns a fresh id. It never returns an empty id without an error.
func (g Generator) New() (string, error) {
	r := g.Rand
	if r == nil {
		r = rand.Reader
	}

	switch g.Style {
	case StyleUUID:
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return "", fmt.Errorf("generating uuid: %w", err)
		}
		return id.String(), nil
	case StyleHuman, "":
		return g.human(r)
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidStyle, g.Style)
	}
}

func (g Generator) human(r io.Reader) (string, error) {
	n := g.Words
	if n == 0 {
		n = DefaultWords
	}
	n = min(max(n, MinWords), MaxWords)

	lists := make([][]string, 0, n)
	for range n - 2 {
		lists = append(lists, adjectives)
	}
	lists = append(lists, nouns, verbs)

	words := make([]string, 0, n)
	for _, list := range lists {
		w, err := pick(r, list)
		if err != nil {
			return "", err
		}
		words = append(words, w)
	}
	return strings.Join(words, separator), nil
}

func pick(r io.Reader, list []string) (string, error) {
	i, err := rand.Int(r, big.NewInt(int64(len(list))))
	if err != nil {
		return "", fmt.Errorf("reading random word: %w", err)
	}
	return list[i.Int64()], nil
}
