package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError locates a configuration problem: by line for YAML files,
// by key for values.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.FilePath, e.Line, e.Column, e.Field, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// checkFile reads the YAML config at path and runs checkYAML on it.
func checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return checkYAML(data, path)
}

// checkYAML checks that data is a YAML mapping whose known keys hold
// scalars. Empty input is valid. Unknown keys are left alone.
func checkYAML(data []byte, path string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		line, msg := splitYAMLError(err)
		return &ValidationError{FilePath: path, Line: line, Column: 1, Message: msg}
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return &ValidationError{
			FilePath: path,
			Line:     root.Line,
			Column:   root.Column,
			Message:  "expected a mapping of setting names to values",
		}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		schema, ok := KnownKeys[key.Value]
		if !ok || value.Kind == yaml.ScalarNode {
			continue
		}
		return &ValidationError{
			FilePath: path,
			Line:     value.Line,
			Column:   value.Column,
			Field:    key.Value,
			Message:  "expected " + describeExpected(schema),
		}
	}
	return nil
}

// splitYAMLError separates the line number from a yaml.v3 diagnostic such as
// "yaml: line 5: could not find expected ':'".
func splitYAMLError(err error) (int, string) {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var line int
	if n, _ := fmt.Sscanf(msg, "line %d:", &line); n == 1 {
		if _, rest, ok := strings.Cut(msg, ": "); ok {
			return line, rest
		}
	}
	return 0, msg
}

// validateValues checks the merged configuration against its struct tags and
// reports failures by key.
func validateValues(cfg *Configuration) error {
	const origin = "configuration"

	validate := validator.New()
	validate.RegisterTagNameFunc(koanfTagName)
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{FilePath: origin, Field: fe.Field(), Message: describeFieldError(fe)}
		}
		return &ValidationError{FilePath: origin, Message: err.Error()}
	}

	if dir := filepath.Clean(cfg.ChangesetDir); dir == "." || dir == ".." {
		return &ValidationError{
			FilePath: origin,
			Field:    "changeset_dir",
			Message:  "must name a directory below the workspace root",
		}
	}
	return nil
}

// describeFieldError phrases a validator failure with the key's schema.
func describeFieldError(fe validator.FieldError) string {
	schema := KnownKeys[fe.Field()]
	switch fe.Tag() {
	case "required":
		return "must not be empty (" + schema.Description + ")"
	case "min", "max":
		return fmt.Sprintf("%v is out of range, expected %s", fe.Value(), describeExpected(schema))
	case "oneof":
		return fmt.Sprintf("%q is not allowed, expected %s", fe.Value(), describeExpected(schema))
	default:
		return fmt.Sprintf("%v is invalid (%s)", fe.Value(), schema.Description)
	}
}

// describeExpected names the values a key accepts.
func describeExpected(schema ConfigKeySchema) string {
	switch {
	case len(schema.AllowedValues) > 0:
		return "one of " + strings.Join(schema.AllowedValues, ", ")
	case schema.Type == TypeInt && schema.Max > 0:
		return fmt.Sprintf("an integer from %d to %d", schema.Min, schema.Max)
	default:
		return "a " + schema.Type.String()
	}
}

func koanfTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
	if name == "-" {
		return ""
	}
	return name
}
