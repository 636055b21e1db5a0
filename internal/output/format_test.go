package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrintSuccess(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		detail  string
		want    string
	}{
		"with detail":    {message: "Created", detail: ".changeset/a.md", want: "✓ Created .changeset/a.md\n"},
		"without detail": {message: "Done", want: "✓ Done\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			PrintSuccess(&buf, tt.message, tt.detail)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintWarningAndFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintWarning(&buf, "careful")
	PrintFailure(&buf, "broken")
	assert.Equal(t, "! careful\n✗ broken\n", buf.String())
}

func TestPrintHeading(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintHeading(&buf, "Pending releases")
	assert.Contains(t, buf.String(), "Pending releases\n─")
}

func TestBumpColor(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"major", "minor", "patch", "other"} {
		assert.Equal(t, kind, BumpColor(kind)(kind), kind)
	}
}

func TestGetTerminalWidth(t *testing.T) {
	t.Parallel()

	assert.Positive(t, GetTerminalWidth())
}
