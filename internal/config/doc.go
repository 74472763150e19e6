// Package config provides configuration structures and utilities for
// pwnreport: documented defaults, validation, the optional .pwnreport
// YAML file, and environment-based credential loading.
package config
