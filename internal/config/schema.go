package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/changesets/internal/logging"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key name as written in config files
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Min, Max      int             // Inclusive range for int types when Max > 0
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"changeset_dir": {
		Path:        "changeset_dir",
		Type:        TypeString,
		Description: "Directory holding changeset files, relative to the workspace root",
		Default:     ".changeset",
	},
	"workspace": {
		Path:          "workspace",
		Type:          TypeEnum,
		AllowedValues: []string{"auto", "cargo", "go", "npm", "bazel"},
		Description:   "Workspace kind; auto detects it from the manifests at the root",
		Default:       "auto",
	},
	"id_style": {
		Path:          "id_style",
		Type:          TypeEnum,
		AllowedValues: []string{"human", "uuid"},
		Description:   "Changeset file name style",
		Default:       "human",
	},
	"id_words": {
		Path:        "id_words",
		Type:        TypeInt,
		Min:         2,
		Max:         5,
		Description: "Number of words in a human id",
		Default:     3,
	},
	"log_level": {
		Path:          "log_level",
		Type:          TypeEnum,
		AllowedValues: logging.Levels(),
		Description:   "Diagnostic log level written to stderr",
		Default:       "none",
	},
	"skip_confirmations": {
		Path:        "skip_confirmations",
		Type:        TypeBool,
		Description: "Skip confirmation prompts",
		Default:     false,
	},
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned for a key missing from KnownKeys.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// ParsedValue is a command-line value converted to its key's type.
type ParsedValue struct {
	Key    string
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue parses value for key as `changesets config set` receives it.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, ok := KnownKeys[key]
	if !ok {
		return ParsedValue{}, ErrUnknownKey{Key: key}
	}
	parsed, err := parseValue(schema, strings.TrimSpace(value))
	if err != nil {
		return ParsedValue{}, fmt.Errorf("%s: %w", key, err)
	}
	parsed.Key = key
	parsed.Raw = value
	return parsed, nil
}

func parseValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		b, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
		}
		return ParsedValue{Parsed: b, Type: TypeBool}, nil
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
		}
		if schema.Max > 0 && (n < schema.Min || n > schema.Max) {
			return ParsedValue{}, fmt.Errorf("%d is out of range, expected %s", n, describeExpected(schema))
		}
		return ParsedValue{Parsed: n, Type: TypeInt}, nil
	case TypeEnum:
		for _, allowed := range schema.AllowedValues {
			if strings.EqualFold(value, allowed) {
				return ParsedValue{Parsed: allowed, Type: TypeEnum}, nil
			}
		}
		return ParsedValue{}, fmt.Errorf(
			"invalid value: %q (valid options: %s)",
			value,
			strings.Join(schema.AllowedValues, ", "),
		)
	default:
		if value == "" {
			return ParsedValue{}, fmt.Errorf("must not be empty (%s)", schema.Description)
		}
		return ParsedValue{Parsed: value, Type: TypeString}, nil
	}
}
