// Package types provides type definitions for the survey definition data model
// used throughout the survey-maker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// ConfigError represents a fatal configuration error in the survey definition.
// It always names the offending key so the user can find it in the YAML file.
type ConfigError struct {
	Key     string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error at %q: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error at %q: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
