package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/utkarsh5026/TrackIt/pkg/common/fileops"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// Store handles reading and writing one JSON configuration file.
// Dotted keys map to nested JSON sections, so "user.name" lives at
// {"user": {"name": ...}}. Multi-value keys serialize as arrays.
// Writes are atomic to prevent a crash leaving a torn file.
type Store struct {
	path    trackpath.AbsolutePath
	level   ConfigLevel
	entries map[string][]*ConfigEntry
}

// NewStore creates a configuration store for a specific file and level
func NewStore(path trackpath.AbsolutePath, level ConfigLevel) *Store {
	return &Store{
		path:    path,
		level:   level,
		entries: make(map[string][]*ConfigEntry),
	}
}

// Load reads and parses the configuration file.
// A missing file is fine; an empty config is valid.
func (s *Store) Load() error {
	s.entries = make(map[string][]*ConfigEntry)

	exists, e := fileops.Exists(s.path)
	if e != nil {
		return NewConfigError("load", CodeNotFoundErr, "", s.path.String(), s.level.String(), e)
	}
	if !exists {
		return nil
	}

	content, e := fileops.ReadBytes(s.path)
	if e != nil {
		return NewConfigError("load", CodeNotFoundErr, "", s.path.String(), s.level.String(), e)
	}
	if len(content) == 0 {
		return nil
	}

	var nested map[string]any
	if e := json.Unmarshal(content, &nested); e != nil {
		return NewConfigError("load", CodeInvalidFormatErr, "", s.path.String(), s.level.String(),
			fmt.Errorf("%w: %v", ErrInvalidFormat, e))
	}

	s.flatten("", nested)
	return nil
}

// Save writes the configuration to disk atomically
func (s *Store) Save() error {
	nested := make(map[string]any)
	for key, entries := range s.entries {
		values := make([]string, len(entries))
		for i, entry := range entries {
			values[i] = entry.Value
		}
		setNested(nested, key, values)
	}

	content, e := json.MarshalIndent(nested, "", "  ")
	if e != nil {
		return NewConfigError("save", CodeInvalidFormatErr, "", s.path.String(), s.level.String(), e)
	}

	if e := fileops.EnsureParentDir(s.path); e != nil {
		return NewConfigError("save", CodeInvalidFormatErr, "", s.path.String(), s.level.String(), e)
	}
	if e := fileops.AtomicWrite(s.path, append(content, '\n'), 0644); e != nil {
		return NewConfigError("save", CodeInvalidFormatErr, "", s.path.String(), s.level.String(), e)
	}
	return nil
}

// GetEntries returns all entries for a specific key
func (s *Store) GetEntries(key string) []*ConfigEntry {
	entries, exists := s.entries[key]
	if !exists {
		return nil
	}

	result := make([]*ConfigEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry.Clone()
	}
	return result
}

// Keys returns every key the store holds, sorted
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set replaces all values for a key with a single value
func (s *Store) Set(key, value string) {
	s.entries[key] = []*ConfigEntry{NewEntry(key, value, s.level, NewFileSource(s.path))}
}

// Add appends a value to a multi-value key
func (s *Store) Add(key, value string) {
	s.entries[key] = append(s.entries[key], NewEntry(key, value, s.level, NewFileSource(s.path)))
}

// Unset removes all values for a key
func (s *Store) Unset(key string) {
	delete(s.entries, key)
}

// HasKey returns true if the store has any entries for the given key
func (s *Store) HasKey(key string) bool {
	return len(s.entries[key]) > 0
}

// Path returns the file path for this store
func (s *Store) Path() trackpath.AbsolutePath {
	return s.path
}

// Level returns the configuration level for this store
func (s *Store) Level() ConfigLevel {
	return s.level
}

// flatten turns nested JSON sections into dotted-key entries
func (s *Store) flatten(prefix string, section map[string]any) {
	source := NewFileSource(s.path)

	for key, value := range section {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			s.flatten(full, v)
		case []any:
			for _, item := range v {
				s.entries[full] = append(s.entries[full], NewEntry(full, scalarString(item), s.level, source))
			}
		default:
			s.entries[full] = []*ConfigEntry{NewEntry(full, scalarString(v), s.level, source)}
		}
	}
}

// setNested places a dotted key's values into the nested JSON shape
func setNested(root map[string]any, key string, values []string) {
	parts := strings.Split(key, ".")
	section := root
	for _, part := range parts[:len(parts)-1] {
		child, ok := section[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			section[part] = child
		}
		section = child
	}

	leaf := parts[len(parts)-1]
	if len(values) == 1 {
		section[leaf] = values[0]
	} else {
		section[leaf] = values
	}
}

// scalarString renders a JSON scalar as its config string form
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return fmt.Sprintf("%t", s)
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
