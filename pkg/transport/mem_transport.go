package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

// MemTransport is an in-memory Transport implementing the remote entity
// API without any network. It backs the sync engine's tests and serves
// as the reference for what a real remote must answer.
//
// Paths follow the remote convention:
//
//	GET    /entities/<kind>        listing of entity metadata
//	GET    /entities/<kind>/<id>   entity payload
//	PUT    /entities/<kind>/<id>   store entity payload
//	DELETE /entities/<kind>/<id>   remove entity
type MemTransport struct {
	mu      sync.Mutex
	entries map[string]memEntry
	token   Token
	failure error
}

type memEntry struct {
	payload    []byte
	checksum   string
	modifiedAt time.Time
}

type memMetadata struct {
	ID         string    `json:"id"`
	Checksum   string    `json:"checksum"`
	ModifiedAt time.Time `json:"modified_at"`
}

// NewMemTransport creates an empty in-memory transport that accepts
// any credentials
func NewMemTransport() *MemTransport {
	return &MemTransport{
		entries: make(map[string]memEntry),
		token:   Token("mem-session"),
	}
}

// FailWith makes every subsequent call return the given error,
// simulating an unreachable remote. Pass nil to heal.
func (m *MemTransport) FailWith(e error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = e
}

// Seed stores an entity payload directly, bypassing the request path
func (m *MemTransport) Seed(kind objects.ObjectKind, id string, payload []byte, modifiedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(kind, id, payload, modifiedAt)
}

// Payload returns the stored bytes for an entity, or nil if absent
func (m *MemTransport) Payload(kind objects.ObjectKind, id string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[entryKey(kind, id)]
	if !ok {
		return nil
	}
	return entry.payload
}

// Count returns the number of stored entities
func (m *MemTransport) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Authenticate accepts any valid credentials
func (m *MemTransport) Authenticate(ctx context.Context, creds Credentials) (Token, error) {
	if e := m.checkFailure(); e != nil {
		return "", NewTransportError("authenticate", CodeTransportErr, "mem", 0, e)
	}
	if e := creds.Validate(); e != nil {
		return "", e
	}
	return m.token, nil
}

// Get serves listings and entity payloads
func (m *MemTransport) Get(ctx context.Context, path string, token Token) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e := m.checkRequest("get", path, token); e != nil {
		return nil, e
	}

	kind, id, e := parseEntityPath(path)
	if e != nil {
		return nil, NewTransportError("get", CodeValidationErr, path, 0, e)
	}

	if id == "" {
		return m.listing(kind)
	}

	entry, ok := m.entries[entryKey(kind, id)]
	if !ok {
		return nil, NewTransportError("get", CodeTransportErr, path, http.StatusNotFound,
			fmt.Errorf("entity not found: %s/%s", kind, id))
	}
	return entry.payload, nil
}

// Post stores an entity payload, same as Put
func (m *MemTransport) Post(ctx context.Context, path string, body []byte, token Token) ([]byte, error) {
	return m.Put(ctx, path, body, token)
}

// Put stores an entity payload under its kind and id
func (m *MemTransport) Put(ctx context.Context, path string, body []byte, token Token) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e := m.checkRequest("put", path, token); e != nil {
		return nil, e
	}

	kind, id, e := parseEntityPath(path)
	if e != nil || id == "" {
		return nil, NewTransportError("put", CodeValidationErr, path, 0,
			fmt.Errorf("put requires an entity path: %s", path))
	}

	m.store(kind, id, body, modifiedAtOf(body))
	return nil, nil
}

// Delete removes an entity
func (m *MemTransport) Delete(ctx context.Context, path string, token Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e := m.checkRequest("delete", path, token); e != nil {
		return e
	}

	kind, id, e := parseEntityPath(path)
	if e != nil || id == "" {
		return NewTransportError("delete", CodeValidationErr, path, 0,
			fmt.Errorf("delete requires an entity path: %s", path))
	}

	delete(m.entries, entryKey(kind, id))
	return nil
}

func (m *MemTransport) listing(kind objects.ObjectKind) ([]byte, error) {
	prefix := string(kind) + "/"

	listing := make([]memMetadata, 0)
	for key, entry := range m.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		listing = append(listing, memMetadata{
			ID:         strings.TrimPrefix(key, prefix),
			Checksum:   entry.checksum,
			ModifiedAt: entry.modifiedAt,
		})
	}

	return json.Marshal(listing)
}

func (m *MemTransport) store(kind objects.ObjectKind, id string, payload []byte, modifiedAt time.Time) {
	m.entries[entryKey(kind, id)] = memEntry{
		payload:    payload,
		checksum:   objects.ComputeDigest(kind, objects.ObjectContent(payload)).String(),
		modifiedAt: modifiedAt,
	}
}

func (m *MemTransport) checkRequest(op, path string, token Token) error {
	if e := m.checkFailure(); e != nil {
		return NewTransportError(op, CodeTransportErr, path, 0, e)
	}
	if token != m.token {
		return NewTransportError(op, CodeTransportErr, path, http.StatusUnauthorized, ErrUnauthenticated)
	}
	return nil
}

func (m *MemTransport) checkFailure() error {
	return m.failure
}

// modifiedAtOf pulls the modification timestamp out of an entity payload
func modifiedAtOf(payload []byte) time.Time {
	var envelope struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	if e := json.Unmarshal(payload, &envelope); e != nil || envelope.UpdatedAt.IsZero() {
		return time.Now()
	}
	return envelope.UpdatedAt
}

func entryKey(kind objects.ObjectKind, id string) string {
	return string(kind) + "/" + id
}

// parseEntityPath splits "/entities/<kind>[/<id>]" into its parts
func parseEntityPath(path string) (objects.ObjectKind, string, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] != "entities" {
		return "", "", fmt.Errorf("unrecognized path: %s", path)
	}

	kind, e := objects.ParseObjectKind(parts[1])
	if e != nil {
		return "", "", e
	}

	if len(parts) == 2 {
		return kind, "", nil
	}
	return kind, strings.Join(parts[2:], "/"), nil
}
