// Package env holds the one-off environment lookups that happen before or
// outside the envconfig-managed config structs (e.g. LOG_FORMAT, read while
// the logger bootstraps).
package env

import "os"

// Get returns the value of the environment variable, or fallback when it is
// unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
