package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Changesets Configuration
# See 'changesets config show' for the effective values and where they come from

# Storage
changeset_dir: .changeset             # Where changeset files live, relative to the workspace root
id_style: human                       # File names: human (brave-owls-sing) | uuid
id_words: 3                           # Words in a human id (2-5)

# Workspace
workspace: auto                       # auto | cargo | go | npm | bazel

# Output
log_level: none                       # none | error | warn | info | debug
skip_confirmations: false             # Skip confirmation prompts (or set CHANGESETS_YES=1)
`
}

// GetDefaults returns the default value of every known key.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}
