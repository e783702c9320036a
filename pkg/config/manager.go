package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
	"golang.org/x/sync/errgroup"
)

// Default configuration paths
const (
	WindowsProgramFilesPath = `C:\ProgramData\TrackIt`
	UnixProgramFilesPath    = "/etc/trackit"
)

// Manager resolves configuration values through the level hierarchy:
// command-line overrides, then the workspace file, the user file, the
// system file, and finally builtin defaults.
// It is thread-safe and can be used concurrently.
type Manager struct {
	mu              sync.RWMutex
	stores          map[ConfigLevel]*Store
	commandLine     map[string]string
	builtinDefaults map[string]string
}

// NewManager creates a configuration manager.
// An invalid track path skips the workspace level, for commands that
// run outside a workspace.
func NewManager(track trackpath.TrackPath) *Manager {
	m := &Manager{
		stores:          make(map[ConfigLevel]*Store),
		commandLine:     make(map[string]string),
		builtinDefaults: make(map[string]string),
	}

	m.initializeStores(track)
	m.loadBuiltinDefaults()
	return m
}

// Load loads all configuration files from disk.
// This is typically called once during initialization.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, store := range m.stores {
		g.Go(store.Load)
	}
	return g.Wait()
}

// Get retrieves a configuration value, respecting the hierarchy.
// Returns the highest precedence value, or nil if not found.
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

// Set sets a configuration value at a specific level.
// Returns an error if the level is not writable or doesn't exist.
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, e := m.writableStore("set", key, level)
	if e != nil {
		return e
	}

	store.Set(key, value)
	return store.Save()
}

// Unset removes a configuration key at a specific level
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, e := m.writableStore("unset", key, level)
	if e != nil {
		return e
	}

	store.Unset(key)
	return store.Save()
}

// SetCommandLine sets a command-line configuration override
func (m *Manager) SetCommandLine(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
}

// List returns all effective configuration entries, sorted by key
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	allKeys := make(map[string]bool)
	for key := range m.commandLine {
		allKeys[key] = true
	}
	for _, store := range m.stores {
		for _, key := range store.Keys() {
			allKeys[key] = true
		}
	}
	for key := range m.builtinDefaults {
		allKeys[key] = true
	}

	entries := make([]*ConfigEntry, 0, len(allKeys))
	for key := range allKeys {
		if entry := m.getUnsafe(key); entry != nil {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// GetStore returns the store for a specific level, nil if absent
func (m *Manager) GetStore(level ConfigLevel) *Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores[level]
}

func (m *Manager) writableStore(operation, key string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, NewConfigError(operation, CodeReadOnlyErr, key, "", level.String(), ErrReadOnly)
	}

	store, exists := m.stores[level]
	if !exists {
		return nil, NewConfigError(operation, CodeNotFoundErr, key, "", level.String(),
			fmt.Errorf("store does not exist for level"))
	}
	return store, nil
}

// initializeStores creates stores for the configuration levels
func (m *Manager) initializeStores(track trackpath.TrackPath) {
	m.stores[SystemLevel] = NewStore(m.systemConfigPath(), SystemLevel)
	m.stores[UserLevel] = NewStore(m.userConfigPath(), UserLevel)

	if track.IsValid() {
		m.stores[WorkspaceLevel] = NewStore(track.ConfigPath(), WorkspaceLevel)
	}
}

// systemConfigPath returns the system-wide configuration path
func (m *Manager) systemConfigPath() trackpath.AbsolutePath {
	var path string
	if runtime.GOOS == "windows" {
		path = filepath.Join(WindowsProgramFilesPath, trackpath.ConfigFileName)
	} else {
		path = filepath.Join(UnixProgramFilesPath, trackpath.ConfigFileName)
	}
	return trackpath.AbsolutePath(path)
}

// userConfigPath returns the user-specific configuration path
func (m *Manager) userConfigPath() trackpath.AbsolutePath {
	homeDir, e := os.UserHomeDir()
	if e != nil {
		// Fall back to the current directory if home can't be determined
		homeDir = "."
	}
	return trackpath.AbsolutePath(filepath.Join(homeDir, ".config", "trackit", trackpath.ConfigFileName))
}

// loadBuiltinDefaults initializes hardcoded default values
func (m *Manager) loadBuiltinDefaults() {
	m.builtinDefaults["user.name"] = ""
	m.builtinDefaults["user.email"] = ""
	m.builtinDefaults["sync.batchsize"] = "50"
	m.builtinDefaults["sync.timeout"] = "2m"
	m.builtinDefaults["sync.autoresolve"] = "false"
	m.builtinDefaults["log.level"] = "info"
	m.builtinDefaults["log.format"] = "text"
	m.builtinDefaults["color.ui"] = "auto"
}

// getUnsafe resolves a key through the hierarchy.
// Caller must hold at least a read lock.
func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if value, exists := m.commandLine[key]; exists {
		return NewCommandLineEntry(key, value)
	}

	for _, level := range []ConfigLevel{WorkspaceLevel, UserLevel, SystemLevel} {
		store, exists := m.stores[level]
		if !exists {
			continue
		}
		if entries := store.GetEntries(key); len(entries) > 0 {
			return entries[len(entries)-1]
		}
	}

	if value, exists := m.builtinDefaults[key]; exists {
		return NewBuiltinEntry(key, value)
	}
	return nil
}
