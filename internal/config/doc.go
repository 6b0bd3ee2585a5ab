// Package config loads and validates application settings.
//
// Values come from built-in defaults, an optional config.yaml in the working
// directory, and TWODO_-prefixed environment variables, in increasing order of
// precedence. Nested keys map to environment names by replacing "." with "_",
// so server.port is read from TWODO_SERVER_PORT.
package config
