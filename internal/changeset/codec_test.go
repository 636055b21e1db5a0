package changeset

import (
	"errors"
	"strings"
	"testing"

	"github.com/ariel-frischer/changesets/internal/bump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_BasicCase(t *testing.T) {
	t.Parallel()

	input := "---\n'cool-package': minor\n---\n        Nice simple summary\n"

	cs, err := Decode(input)
	require.NoError(t, err)

	assert.Equal(t, &Changeset{
		Summary:  "Nice simple summary",
		Releases: []Release{{Package: "cool-package", Kind: bump.Minor}},
	}, cs)
}

func TestDecode_MajorMinorPatch(t *testing.T) {
	t.Parallel()

	input := `---
'cool-package': minor
'cool-package2': major
'cool-package3': patch
---
Nice simple summary
`

	cs, err := Decode(input)
	require.NoError(t, err)

	assert.Equal(t, "Nice simple summary", cs.Summary)
	assert.Equal(t, []Release{
		{Package: "cool-package", Kind: bump.Minor},
		{Package: "cool-package2", Kind: bump.Major},
		{Package: "cool-package3", Kind: bump.Patch},
	}, cs.Releases)
}

func TestDecode_KeyQuotingStyles(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"single quoted": "---\n'pkg-a': patch\n---\n\nsummary\n",
		"double quoted": "---\n\"pkg-a\": patch\n---\n\nsummary\n",
		"plain":         "---\npkg-a: patch\n---\n\nsummary\n",
		"flow mapping":  "---\n{pkg-a: patch}\n---\n\nsummary\n",
		"quoted value":  "---\npkg-a: \"patch\"\n---\n\nsummary\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(input)
			require.NoError(t, err)
			assert.Equal(t, []Release{{Package: "pkg-a", Kind: bump.Patch}}, cs.Releases)
			assert.Equal(t, "summary", cs.Summary)
		})
	}
}

func TestDecode_BackslashInQuotedKey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"escape-like pair":   {input: "---\n\"a\\b\": patch\n---\n\nx\n", want: `a\b`},
		"unknown escape":     {input: "---\n\"win\\path\": patch\n---\n\nx\n", want: `win\path`},
		"doubled backslash":  {input: "---\n\"a\\\\b\": patch\n---\n\nx\n", want: `a\\b`},
		"single quoted kept": {input: "---\n'a\\b': patch\n---\n\nx\n", want: `a\b`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, []Release{{Package: tt.want, Kind: bump.Patch}}, cs.Releases)
		})
	}
}

func TestDecode_EmptyMetadata(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no lines":     "---\n---\n\nSummary\n",
		"blank line":   "---\n\n---\n\nSummary\n",
		"whitespace":   "---\n   \n\t\n---\n\nSummary\n",
		"comment only": "---\n# nothing to release\n---\n\nSummary\n",
		"null":         "---\n~\n---\n\nSummary\n",
		"empty flow":   "---\n{}\n---\n\nSummary\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(input)
			require.NoError(t, err)
			assert.Empty(t, cs.Releases)
			assert.Equal(t, "Summary", cs.Summary)
		})
	}
}

func TestDecode_Summary(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"whitespace only body": {
			input: "---\npkg: patch\n---\n \n\t\n",
			want:  "",
		},
		"no body": {
			input: "---\npkg: patch\n---\n",
			want:  "",
		},
		"surrounding blank lines": {
			input: "---\npkg: patch\n---\n\n\n  Fixed the thing.  \n\n\n",
			want:  "Fixed the thing.",
		},
		"multi-line body keeps inner layout": {
			input: "---\npkg: patch\n---\n\n# Heading\n\n- one\n- two\n",
			want:  "# Heading\n\n- one\n- two",
		},
		"later delimiter lines belong to the body": {
			input: "---\npkg: patch\n---\n\nabove\n---\nbelow\n",
			want:  "above\n---\nbelow",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cs.Summary)
			assert.Equal(t, strings.TrimSpace(cs.Summary), cs.Summary, "trimming must be idempotent")
		})
	}
}

func TestDecode_MissingFrontmatter(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":              "",
		"plain markdown":     "# Summary\n",
		"no newline":         "---",
		"trailing space":     "--- \npkg: patch\n---\n",
		"crlf":               "---\r\npkg: patch\r\n---\r\n",
		"leading blank line": "\n---\npkg: patch\n---\n",
		"four dashes":        "----\npkg: patch\n---\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(input)
			assert.Nil(t, cs)
			assert.ErrorIs(t, err, ErrMissingFrontmatter)
		})
	}
}

func TestDecode_UnterminatedFrontmatter(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"opening only":             "---\n",
		"no closing line":          "---\npkg: patch\nsummary\n",
		"closing without newline":  "---\npkg: patch\n---",
		"closing with space":       "---\npkg: patch\n--- \nsummary\n",
		"dashes inside a key only": "---\n\"a---\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(input)
			assert.Nil(t, cs)
			assert.ErrorIs(t, err, ErrUnterminatedFrontmatter)
		})
	}
}

func TestDecode_DelimiterMustBeWholeLine(t *testing.T) {
	t.Parallel()

	input := "---\n\"pkg---\": minor\n---\n\nsummary\n"

	cs, err := Decode(input)
	require.NoError(t, err)
	assert.Equal(t, []Release{{Package: "pkg---", Kind: bump.Minor}}, cs.Releases)
}

func TestDecode_MalformedMetadata(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"sequence":          "---\n- pkg\n---\n\nsummary\n",
		"scalar":            "---\njust text\n---\n\nsummary\n",
		"nested mapping":    "---\npkg:\n  kind: patch\n---\n\nsummary\n",
		"sequence value":    "---\npkg: [patch]\n---\n\nsummary\n",
		"empty key":         "---\n\"\": patch\n---\n\nsummary\n",
		"complex key":       "---\n? [a, b]\n: patch\n---\n\nsummary\n",
		"yaml syntax error": "---\n'pkg: patch\n---\n\nsummary\n",
		"bad indentation":   "---\npkg: patch\n  other: minor\n---\n\nsummary\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(input)
			assert.Nil(t, cs)
			assert.ErrorIs(t, err, ErrMalformedMetadata)
			assert.True(t, IsDecodeError(err))
		})
	}
}

func TestDecode_MalformedMetadataKeepsDiagnostic(t *testing.T) {
	t.Parallel()

	_, err := Decode("---\n'pkg: patch\n---\n\nsummary\n")
	require.Error(t, err)

	var metaErr *MetadataError
	require.True(t, errors.As(err, &metaErr))
	require.NotNil(t, metaErr.Err, "underlying YAML diagnostic should be preserved")
	assert.Contains(t, err.Error(), "yaml")
}

func TestDecode_DuplicatePackage(t *testing.T) {
	t.Parallel()

	input := "---\n'pkg': minor\n\"pkg\": major\n---\n\nsummary\n"

	cs, err := Decode(input)
	assert.Nil(t, cs)
	assert.ErrorIs(t, err, ErrMalformedMetadata)

	var dup *DuplicatePackageError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "pkg", dup.Package)
	assert.Equal(t, 3, dup.Line)
}

func TestDecode_UnrecognizedBumpKind(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		value string
	}{
		"capitalized": {input: "---\npkg: Major\n---\n\nsummary\n", value: "Major"},
		"unknown":     {input: "---\npkg: huge\n---\n\nsummary\n", value: "huge"},
		"missing":     {input: "---\npkg:\n---\n\nsummary\n", value: ""},
		"numeric":     {input: "---\npkg: 1\n---\n\nsummary\n", value: "1"},
		"second entry": {
			input: "---\na: patch\nb: prerelease\n---\n\nsummary\n",
			value: "prerelease",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs, err := Decode(tt.input)
			assert.Nil(t, cs)
			assert.ErrorIs(t, err, bump.ErrUnrecognized)
			assert.True(t, IsDecodeError(err))

			var unrecognized *bump.UnrecognizedError
			require.True(t, errors.As(err, &unrecognized))
			assert.Equal(t, tt.value, unrecognized.Value)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cs   Changeset
		want string
	}{
		"releases and summary": {
			cs: Changeset{
				Summary: "Nice simple summary",
				Releases: []Release{
					{Package: "cool-package", Kind: bump.Minor},
					{Package: "cool-package2", Kind: bump.Major},
				},
			},
			want: "---\n\"cool-package\": minor\n\"cool-package2\": major\n---\n\nNice simple summary\n",
		},
		"no releases": {
			cs:   Changeset{Summary: "Docs only"},
			want: "---\n---\n\nDocs only\n",
		},
		"empty summary": {
			cs:   Changeset{Releases: []Release{{Package: "a", Kind: bump.Patch}}},
			want: "---\n\"a\": patch\n---\n\n\n",
		},
		"package written verbatim": {
			cs:   Changeset{Releases: []Release{{Package: `we"ird`, Kind: bump.Patch}}},
			want: "---\n\"we\"ird\": patch\n---\n\n\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Encode(tt.cs))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := map[string]Changeset{
		"empty": {},
		"summary only": {
			Summary: "Internal refactor",
		},
		"cargo crates": {
			Summary: "Add streaming API",
			Releases: []Release{
				{Package: "changesets-parse", Kind: bump.Minor},
				{Package: "changesets-cli", Kind: bump.Patch},
			},
		},
		"scoped npm packages": {
			Summary: "Breaking: drop node 16",
			Releases: []Release{
				{Package: "@acme/core", Kind: bump.Major},
				{Package: "@acme/ui", Kind: bump.Minor},
			},
		},
		"go module paths": {
			Summary: "Fix race in watcher",
			Releases: []Release{
				{Package: "github.com/acme/tools/cmd", Kind: bump.Patch},
			},
		},
		"yaml-significant characters": {
			Summary: "Multi\n\nparagraph summary with: colons",
			Releases: []Release{
				{Package: "a: b", Kind: bump.Patch},
				{Package: "# not a comment", Kind: bump.Minor},
				{Package: "it's", Kind: bump.Major},
				{Package: "---", Kind: bump.Patch},
				{Package: "true", Kind: bump.Patch},
				{Package: "123", Kind: bump.Minor},
				{Package: "ünïcode", Kind: bump.Patch},
			},
		},
		"backslashes": {
			Summary: "Windows paths",
			Releases: []Release{
				{Package: `a\b`, Kind: bump.Patch},
				{Package: `C:\pkg`, Kind: bump.Minor},
				{Package: `a\\b`, Kind: bump.Major},
				{Package: `it's\here`, Kind: bump.Patch},
				{Package: `trailing\`, Kind: bump.Patch},
			},
		},
	}

	for name, cs := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			decoded, err := Decode(Encode(cs))
			require.NoError(t, err)
			assert.Equal(t, cs, *decoded)
		})
	}
}

func TestEncode_CanonicalizesDecodedText(t *testing.T) {
	t.Parallel()

	input := "---\n'cool-package': minor\ncool-package2: major\n---\nNice simple summary\n"
	cs, err := Decode(input)
	require.NoError(t, err)

	canonical := Encode(*cs)
	assert.Equal(t, "---\n\"cool-package\": minor\n\"cool-package2\": major\n---\n\nNice simple summary\n", canonical)

	again, err := Decode(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, Encode(*again))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cs, err := Load(strings.NewReader("---\npkg: patch\n---\n\nsummary\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg"}, cs.Packages())
}
