// Package config loads and validates application settings. Values come from
// built-in defaults, an optional config.yaml, and TERMDECK_-prefixed
// environment variables, with later sources taking precedence.
package config
