// Package config loads and validates application configuration from
// environment variables (PULSE_ prefix) overlaid on an optional YAML
// file. It replaces the original deployment's scattered process
// environment reads with a single explicit struct handed to the
// pipeline and the presenters.
package config
