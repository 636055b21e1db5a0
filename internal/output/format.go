// Package output provides terminal output formatting utilities for the changesets CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintHeading prints a bold section heading followed by a rule sized to the
// terminal.
func PrintHeading(out io.Writer, title string) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	width := min(GetTerminalWidth(), 60)
	fmt.Fprintf(out, "%s\n%s\n", bold(title), dim(strings.Repeat("─", width)))
}

// PrintSuccess prints a green checkmark and message, with the cyan detail
// (usually a path) appended when not empty.
func PrintSuccess(out io.Writer, message, detail string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	if detail == "" {
		fmt.Fprintf(out, "%s %s\n", green("✓"), message)
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", green("✓"), message, cyan(detail))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintFailure prints a red cross and message.
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// BumpColor returns the colorizer used for a bump kind name: red for major,
// yellow for minor, green for patch.
func BumpColor(kind string) func(a ...interface{}) string {
	switch kind {
	case "major":
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case "minor":
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case "patch":
		return color.New(color.FgGreen).SprintFunc()
	default:
		return fmt.Sprint
	}
}
