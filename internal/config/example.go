package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todocli configuration file
# Values can be overridden by environment variables or CLI flags

# Storage file (relative to the working directory, supports ~ expansion)
todo_file = "storage/todo-file.json"

# JSON Schema used by the doctor command (optional)
schema_file = "todo-file.schema.json"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps in log output
log_timestamps = false

# Disable colored list output
no_color = false
`
}
