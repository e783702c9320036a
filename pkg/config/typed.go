package config

import "time"

// TypedConfig provides type-safe access to common configuration values.
// It wraps a Manager and falls back to the builtin default on missing
// or malformed values.
type TypedConfig struct {
	manager *Manager
}

// NewTypedConfig creates a TypedConfig wrapper around a Manager
func NewTypedConfig(manager *Manager) *TypedConfig {
	return &TypedConfig{manager: manager}
}

// UserName returns the configured author name
func (tc *TypedConfig) UserName() string {
	entry := tc.manager.Get("user.name")
	if entry == nil {
		return ""
	}
	return entry.AsString()
}

// UserEmail returns the configured author email
func (tc *TypedConfig) UserEmail() string {
	entry := tc.manager.Get("user.email")
	if entry == nil {
		return ""
	}
	return entry.AsString()
}

// SyncBatchSize returns the per-batch failure budget for sync
func (tc *TypedConfig) SyncBatchSize() int {
	entry := tc.manager.Get("sync.batchsize")
	if entry == nil {
		return 50
	}
	val, e := entry.AsInt()
	if e != nil || val <= 0 {
		return 50
	}
	return val
}

// SyncTimeout returns the advisory timeout for sync invocations
func (tc *TypedConfig) SyncTimeout() time.Duration {
	entry := tc.manager.Get("sync.timeout")
	if entry == nil {
		return 2 * time.Minute
	}
	val, e := entry.AsDuration()
	if e != nil || val <= 0 {
		return 2 * time.Minute
	}
	return val
}

// SyncAutoResolve returns whether sync settles auto-resolvable
// conflicts by default
func (tc *TypedConfig) SyncAutoResolve() bool {
	entry := tc.manager.Get("sync.autoresolve")
	if entry == nil {
		return false
	}
	val, e := entry.AsBoolean()
	if e != nil {
		return false
	}
	return val
}

// LogLevel returns the configured log level name
func (tc *TypedConfig) LogLevel() string {
	entry := tc.manager.Get("log.level")
	if entry == nil {
		return "info"
	}
	return entry.AsString()
}

// LogFormat returns the configured log output format
func (tc *TypedConfig) LogFormat() string {
	entry := tc.manager.Get("log.format")
	if entry == nil {
		return "text"
	}
	return entry.AsString()
}
