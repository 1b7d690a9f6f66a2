// Package config loads hustings configuration from YAML.
//
// Values are layered: built-in defaults, then the YAML file, then HUSTINGS_*
// environment variables. Command-line flags are applied last by the CLI.
package config
