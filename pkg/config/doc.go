// Package config loads profedit configuration.
//
// The global configuration is read from the user config directory and may be
// refined by a project configuration found in the Salesforce DX project.
// Both are validated against their JSON schemas before being decoded.
package config
