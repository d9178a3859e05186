// Package config defines the application configuration structure and loads
// it from environment variables (SPARK_ prefix) and an optional config.yaml,
// validating the result with go-playground/validator.
package config
