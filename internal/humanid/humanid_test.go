package humanid

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Human(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		words int
		want  int
	}{
		"default":         {words: 0, want: DefaultWords},
		"two":             {words: 2, want: 2},
		"five":            {words: 5, want: 5},
		"clamped low":     {words: 1, want: MinWords},
		"clamped high":    {words: 9, want: MaxWords},
		"negative clamps": {words: -3, want: MinWords},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			id, err := Generator{Style: StyleHuman, Words: tt.words}.New()
			require.NoError(t, err)

			parts := strings.Split(id, "-")
			require.Len(t, parts, tt.want)
			assert.Contains(t, nouns, parts[len(parts)-2])
			assert.Contains(t, verbs, parts[len(parts)-1])
			for _, adj := range parts[:len(parts)-2] {
				assert.Contains(t, adjectives, adj)
			}
		})
	}
}

func TestGenerator_HumanIsLowercaseAndFileSafe(t *testing.T) {
	t.Parallel()

	safe := regexp.MustCompile(`^[a-z]+(-[a-z]+)+$`)
	for range 50 {
		id, err := Generator{}.New()
		require.NoError(t, err)
		assert.Regexp(t, safe, id)
	}
}

func TestGenerator_UUID(t *testing.T) {
	t.Parallel()

	id, err := Generator{Style: StyleUUID}.New()
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	seed := bytes.Repeat([]byte{0x01}, 64)
	a, err := Generator{Style: StyleUUID, Rand: bytes.NewReader(seed)}.New()
	require.NoError(t, err)
	b, err := Generator{Style: StyleUUID, Rand: bytes.NewReader(seed)}.New()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerator_RandFailure(t *testing.T) {
	t.Parallel()

	for _, style := range []Style{StyleHuman, StyleUUID} {
		id, err := Generator{Style: style, Rand: bytes.NewReader(nil)}.New()
		assert.Error(t, err, style)
		assert.Empty(t, id)
	}
}

func TestGenerator_InvalidStyle(t *testing.T) {
	t.Parallel()

	_, err := Generator{Style: "snowflake"}.New()
	assert.True(t, errors.Is(err, ErrInvalidStyle))
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Style
		wantErr bool
	}{
		"empty":   {input: "", want: StyleHuman},
		"human":   {input: "human", want: StyleHuman},
		"uuid":    {input: "UUID", want: StyleUUID},
		"unknown": {input: "ulid", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStyle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStyle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
