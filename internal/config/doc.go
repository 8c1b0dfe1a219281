// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable
// interpolation; the bearer token is expected to arrive that way rather
// than being written into the file.
package config
