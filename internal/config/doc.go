// Package config loads the tool's own settings (file locations, output format,
// log level) from multiple sources with precedence: CLI flags > Environment
// variables > YAML config > Defaults. Placeholder values themselves never come
// from here; they are resolved from the env file and build parameters.
package config
