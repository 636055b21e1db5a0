package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the changesets CLI.
// These templates ensure consistent, actionable error messages.

// NoWorkspace creates an error when no supported manifest is found at root.
func NoWorkspace(root string, cause error) *CLIError {
	err := NewPrerequisiteError(
		fmt.Sprintf("no workspace manifest found in %s", root),
		"Run changesets from the root of a Cargo, Go, npm/pnpm or Bazel workspace",
		"Or point at the root with: changesets --dir <path>",
		"Or force a workspace kind in .changeset/config.yml: workspace: cargo",
	)
	err.Cause = cause
	return err
}

// WorkspaceInspectionFailed creates an error when manifests cannot be read.
func WorkspaceInspectionFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Prerequisite,
		"reading workspace packages failed",
		"Check that every workspace member has a valid manifest",
		"Run with --debug for details",
	)
}

// NoPackages creates an error when a workspace lists no packages.
func NoPackages(root string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("workspace at %s has no packages", root),
		"Check the workspace member list in the root manifest",
	)
}

// NotATerminal creates an error when interactive selection is impossible.
func NotATerminal() *CLIError {
	return NewArgumentErrorWithUsage(
		"interactive mode requires a terminal",
		"changesets add --major <pkg> --minor <pkg> --patch <pkg> -m \"summary\"",
		"Pass the packages and summary as flags",
		"Or use --empty to record a changeset without releases",
	)
}

// EmptyChangeset creates an error when no package was selected.
func EmptyChangeset() *CLIError {
	return NewArgumentError(
		"no packages selected",
		"Select at least one package",
		"Or use --empty to record a changeset without releases",
	)
}

// UnknownPackages creates an error for selections naming packages the
// workspace does not contain.
func UnknownPackages(names, available []string, cause error) *CLIError {
	steps := []string{"Check the spelling of the package names"}
	if len(available) > 0 {
		steps = append(steps, "Workspace packages: "+strings.Join(available, ", "))
	}
	err := NewArgumentError(fmt.Sprintf("unknown packages: %s", strings.Join(names, ", ")), steps...)
	err.Cause = cause
	return err
}

// MajorNotSelected creates an error when major packages are not part of the
// changeset.
func MajorNotSelected(names []string, cause error) *CLIError {
	err := NewArgumentError(
		fmt.Sprintf("major packages must also be selected for the changeset: %s", strings.Join(names, ", ")),
		"Select the package in the first question, then choose it for a major bump",
	)
	err.Cause = cause
	return err
}

// ChangesetExists creates an error when id generation keeps colliding.
func ChangesetExists(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("could not pick an unused changeset name (last tried %s)", path),
		"Try again, or switch to id_style: uuid in .changeset/config.yml",
	)
}

// InvalidChangeset creates an error for a changeset file that does not decode.
func InvalidChangeset(path string, cause error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  fmt.Sprintf("%s: %v", path, cause),
		Remediation: []string{
			"A changeset starts with ---, lists \"package\": major|minor|patch lines, ends the list with ---, then the summary",
			"Fix or delete the file",
		},
		Cause: cause,
	}
}

// InvalidChangesets summarizes failed checks.
func InvalidChangesets(count int) *CLIError {
	noun := "changeset"
	if count != 1 {
		noun = "changesets"
	}
	return &CLIError{
		Category:    Validation,
		Message:     fmt.Sprintf("%d invalid %s", count, noun),
		Remediation: []string{"Fix the files listed above and run 'changesets check' again"},
	}
}

// ConfigInvalid creates an error for configuration that fails to load.
func ConfigInvalid(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration,
		"loading configuration failed",
		"Check .changeset/config.yml and ~/.config/changesets/config.yml",
		"Show the effective configuration with: changesets config show",
	)
}

// InvalidFlagValue creates an error for a bad flag value.
func InvalidFlagValue(flag, value string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid value %q for --%s", value, flag),
		fmt.Sprintf("Valid values: %s", strings.Join(valid, ", ")),
	)
}

// InvalidConfigKey creates an error for a key config set does not know.
func InvalidConfigKey(key string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown configuration key %q", key),
		fmt.Sprintf("Known keys: %s", strings.Join(valid, ", ")),
	)
}
