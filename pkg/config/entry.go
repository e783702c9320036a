package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// ConfigSource records where a configuration entry came from: a special
// source (command-line, builtin) or a file path
type ConfigSource string

const (
	// CommandLineSource represents configuration from command-line flags
	CommandLineSource ConfigSource = "command-line"

	// BuiltinSource represents hardcoded default configuration
	BuiltinSource ConfigSource = "builtin"
)

// NewFileSource creates a ConfigSource from a file path
func NewFileSource(path trackpath.AbsolutePath) ConfigSource {
	return ConfigSource(path.String())
}

// String returns the string representation of the source
func (s ConfigSource) String() string {
	return string(s)
}

// IsFile returns true if this is a file-based source
func (s ConfigSource) IsFile() bool {
	return s != CommandLineSource && s != BuiltinSource
}

// ConfigEntry represents a single configuration value with its origin
type ConfigEntry struct {
	Key    string
	Value  string
	Level  ConfigLevel
	Source ConfigSource
}

// NewEntry creates a new configuration entry
func NewEntry(key, value string, level ConfigLevel, source ConfigSource) *ConfigEntry {
	return &ConfigEntry{
		Key:    key,
		Value:  value,
		Level:  level,
		Source: source,
	}
}

// NewCommandLineEntry creates an entry sourced from a command-line flag
func NewCommandLineEntry(key, value string) *ConfigEntry {
	return NewEntry(key, value, CommandLineLevel, CommandLineSource)
}

// NewBuiltinEntry creates an entry sourced from hardcoded defaults
func NewBuiltinEntry(key, value string) *ConfigEntry {
	return NewEntry(key, value, BuiltinLevel, BuiltinSource)
}

// AsString returns the value as a string
func (e *ConfigEntry) AsString() string {
	return e.Value
}

// AsInt converts the value to an integer
func (e *ConfigEntry) AsInt() (int, error) {
	val, err := strconv.Atoi(e.Value)
	if err != nil {
		return 0, NewConfigError("convert", CodeConversionErr, e.Key, "", "", err)
	}
	return val, nil
}

// AsBoolean converts the value to a boolean
// Accepts: "true", "yes", "1", "on" (case-insensitive) as true
// Accepts: "false", "no", "0", "off" (case-insensitive) as false
func (e *ConfigEntry) AsBoolean() (bool, error) {
	lower := strings.ToLower(strings.TrimSpace(e.Value))
	switch lower {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	default:
		return false, NewConfigError("convert", CodeConversionErr, e.Key, "", "", ErrConversion)
	}
}

// AsDuration converts the value to a duration
func (e *ConfigEntry) AsDuration() (time.Duration, error) {
	val, err := time.ParseDuration(e.Value)
	if err != nil {
		return 0, NewConfigError("convert", CodeConversionErr, e.Key, "", "", err)
	}
	return val, nil
}

// AsList converts the value to a list of strings by splitting on commas
// Trims whitespace from each element and filters out empty strings
func (e *ConfigEntry) AsList() []string {
	if e.Value == "" {
		return []string{}
	}

	parts := strings.Split(e.Value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Clone creates a copy of the configuration entry
func (e *ConfigEntry) Clone() *ConfigEntry {
	copied := *e
	return &copied
}
