package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

func setupTestManager(t *testing.T) (*Manager, trackpath.TrackPath) {
	t.Helper()

	tmpDir, e := os.MkdirTemp("", "config_test_*")
	if e != nil {
		t.Fatalf("failed to create temp dir: %v", e)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	track := trackpath.TrackPath(filepath.Join(tmpDir, trackpath.TrackDir))
	if e := os.MkdirAll(track.String(), 0755); e != nil {
		t.Fatalf("failed to create track dir: %v", e)
	}

	m := NewManager(track)
	if e := m.Load(context.Background()); e != nil {
		t.Fatalf("failed to load config: %v", e)
	}
	return m, track
}

func TestBuiltinDefaults(t *testing.T) {
	m, _ := setupTestManager(t)

	entry := m.Get("sync.batchsize")
	if entry == nil {
		t.Fatal("expected builtin default for sync.batchsize")
	}
	if entry.Level != BuiltinLevel {
		t.Errorf("expected builtin level, got %s", entry.Level)
	}
	val, e := entry.AsInt()
	if e != nil || val != 50 {
		t.Errorf("expected batch size 50, got %d (%v)", val, e)
	}
}

func TestSetAndGetWorkspaceLevel(t *testing.T) {
	m, track := setupTestManager(t)

	if e := m.Set("user.name", "alice", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}

	entry := m.Get("user.name")
	if entry == nil || entry.Value != "alice" {
		t.Fatalf("expected workspace value, got %+v", entry)
	}
	if entry.Level != WorkspaceLevel {
		t.Errorf("expected workspace level, got %s", entry.Level)
	}

	// The value persisted and survives a fresh load
	fresh := NewManager(track)
	if e := fresh.Load(context.Background()); e != nil {
		t.Fatalf("reload failed: %v", e)
	}
	entry = fresh.Get("user.name")
	if entry == nil || entry.Value != "alice" {
		t.Errorf("expected persisted value after reload, got %+v", entry)
	}
}

func TestCommandLineOverridesEverything(t *testing.T) {
	m, _ := setupTestManager(t)

	if e := m.Set("log.level", "debug", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}
	m.SetCommandLine("log.level", "error")

	entry := m.Get("log.level")
	if entry == nil || entry.Value != "error" {
		t.Fatalf("expected command-line value to win, got %+v", entry)
	}
	if entry.Level != CommandLineLevel {
		t.Errorf("expected command-line level, got %s", entry.Level)
	}
}

func TestUnset(t *testing.T) {
	m, _ := setupTestManager(t)

	if e := m.Set("custom.key", "v", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}
	if e := m.Unset("custom.key", WorkspaceLevel); e != nil {
		t.Fatalf("unset failed: %v", e)
	}
	if entry := m.Get("custom.key"); entry != nil {
		t.Errorf("expected key gone after unset, got %+v", entry)
	}
}

func TestReadOnlyLevels(t *testing.T) {
	m, _ := setupTestManager(t)

	e := m.Set("user.name", "alice", BuiltinLevel)
	if e == nil {
		t.Fatal("expected set at builtin level to fail")
	}
	if !IsReadOnly(e) {
		t.Errorf("expected read-only error, got: %v", e)
	}
}

func TestListIsSortedAndEffective(t *testing.T) {
	m, _ := setupTestManager(t)

	if e := m.Set("user.name", "alice", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}

	entries := m.List()
	if len(entries) == 0 {
		t.Fatal("expected entries")
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key > entries[i].Key {
			t.Fatalf("expected sorted keys, %s before %s", entries[i-1].Key, entries[i].Key)
		}
	}

	var found bool
	for _, entry := range entries {
		if entry.Key == "user.name" {
			found = true
			if entry.Value != "alice" {
				t.Errorf("expected effective value alice, got %s", entry.Value)
			}
		}
	}
	if !found {
		t.Error("expected user.name in listing")
	}
}

func TestNestedFileShape(t *testing.T) {
	m, track := setupTestManager(t)

	if e := m.Set("user.name", "alice", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}

	content, e := os.ReadFile(track.ConfigPath().String())
	if e != nil {
		t.Fatalf("failed to read config file: %v", e)
	}
	if string(content) == "" || string(content)[0] != '{' {
		t.Fatalf("expected JSON object, got: %s", content)
	}

	// Dotted keys nest in the file
	store := NewStore(track.ConfigPath(), WorkspaceLevel)
	if e := store.Load(); e != nil {
		t.Fatalf("store load failed: %v", e)
	}
	entries := store.GetEntries("user.name")
	if len(entries) != 1 || entries[0].Value != "alice" {
		t.Errorf("expected nested key round trip, got %+v", entries)
	}
}

func TestTypedConfig(t *testing.T) {
	m, _ := setupTestManager(t)
	tc := NewTypedConfig(m)

	if got := tc.SyncBatchSize(); got != 50 {
		t.Errorf("expected default batch size 50, got %d", got)
	}
	if got := tc.SyncTimeout(); got != 2*time.Minute {
		t.Errorf("expected default timeout 2m, got %s", got)
	}
	if tc.SyncAutoResolve() {
		t.Error("expected auto-resolve off by default")
	}
	if got := tc.LogLevel(); got != "info" {
		t.Errorf("expected default log level info, got %s", got)
	}

	if e := m.Set("sync.batchsize", "10", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}
	if e := m.Set("sync.timeout", "30s", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}
	if got := tc.SyncBatchSize(); got != 10 {
		t.Errorf("expected batch size 10, got %d", got)
	}
	if got := tc.SyncTimeout(); got != 30*time.Second {
		t.Errorf("expected timeout 30s, got %s", got)
	}

	// Malformed values fall back to defaults
	if e := m.Set("sync.batchsize", "lots", WorkspaceLevel); e != nil {
		t.Fatalf("set failed: %v", e)
	}
	if got := tc.SyncBatchSize(); got != 50 {
		t.Errorf("expected fallback batch size, got %d", got)
	}
}

func TestEntryConversions(t *testing.T) {
	entry := NewBuiltinEntry("k", "yes")
	val, e := entry.AsBoolean()
	if e != nil || !val {
		t.Errorf("expected yes to parse true, got %v (%v)", val, e)
	}

	entry = NewBuiltinEntry("k", "maybe")
	if _, e := entry.AsBoolean(); !IsConversion(e) {
		t.Errorf("expected conversion error, got: %v", e)
	}

	entry = NewBuiltinEntry("k", "a, b, ,c")
	list := entry.AsList()
	if len(list) != 3 || list[0] != "a" || list[2] != "c" {
		t.Errorf("unexpected list: %v", list)
	}
}

func TestParseLevel(t *testing.T) {
	level, e := ParseLevel("workspace")
	if e != nil || level != WorkspaceLevel {
		t.Errorf("expected workspace level, got %v (%v)", level, e)
	}

	if _, e := ParseLevel("galaxy"); e == nil {
		t.Error("expected unknown level to fail")
	}
}
