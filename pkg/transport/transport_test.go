package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/objects"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"ssh key", SSHKeyCredentials("/home/alice/.ssh/id_ed25519", ""), false},
		{"ssh key missing path", Credentials{Kind: CredentialSSHKey}, true},
		{"bearer", BearerCredentials("tok-123"), false},
		{"bearer empty", Credentials{Kind: CredentialBearer}, true},
		{"oauth", OAuthCredentials("client-1", "refresh-1"), false},
		{"oauth missing refresh", Credentials{Kind: CredentialOAuth, ClientID: "client-1"}, true},
		{"unknown kind", Credentials{Kind: "kerberos"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.creds.Validate()
			if tt.wantErr && e == nil {
				t.Error("expected validation to fail")
			}
			if !tt.wantErr && e != nil {
				t.Errorf("expected validation to pass, got: %v", e)
			}
		})
	}
}

func TestMemTransportRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemTransport()

	token, e := mem.Authenticate(ctx, BearerCredentials("anything"))
	if e != nil {
		t.Fatalf("authenticate failed: %v", e)
	}

	payload := []byte(`{"id":"a1","updated_at":"2026-08-01T10:00:00Z"}`)
	if _, e := mem.Put(ctx, "/entities/issue/a1", payload, token); e != nil {
		t.Fatalf("put failed: %v", e)
	}

	got, e := mem.Get(ctx, "/entities/issue/a1", token)
	if e != nil {
		t.Fatalf("get failed: %v", e)
	}
	if string(got) != string(payload) {
		t.Errorf("expected payload round trip, got %s", got)
	}

	listing, e := mem.Get(ctx, "/entities/issue", token)
	if e != nil {
		t.Fatalf("listing failed: %v", e)
	}
	var metadata []memMetadata
	if e := json.Unmarshal(listing, &metadata); e != nil {
		t.Fatalf("failed to decode listing: %v", e)
	}
	if len(metadata) != 1 || metadata[0].ID != "a1" {
		t.Errorf("unexpected listing: %+v", metadata)
	}
	want := objects.ComputeDigest(objects.IssueKind, objects.ObjectContent(payload))
	if metadata[0].Checksum != want.String() {
		t.Errorf("expected checksum %s, got %s", want, metadata[0].Checksum)
	}
	if got := metadata[0].ModifiedAt.UTC(); got != time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC) {
		t.Errorf("expected modified_at from payload, got %v", got)
	}

	if e := mem.Delete(ctx, "/entities/issue/a1", token); e != nil {
		t.Fatalf("delete failed: %v", e)
	}
	if _, e := mem.Get(ctx, "/entities/issue/a1", token); e == nil {
		t.Error("expected get after delete to fail")
	}
}

func TestMemTransportRejectsBadToken(t *testing.T) {
	mem := NewMemTransport()

	_, e := mem.Get(context.Background(), "/entities/issue", Token("wrong"))
	if e == nil {
		t.Fatal("expected unauthorized error")
	}
	if !IsTransportFailure(e) {
		t.Errorf("expected a transport failure, got: %v", e)
	}
}

func TestMemTransportFailWith(t *testing.T) {
	ctx := context.Background()
	mem := NewMemTransport()
	token, _ := mem.Authenticate(ctx, BearerCredentials("x"))

	boom := errors.New("network down")
	mem.FailWith(boom)

	if _, e := mem.Get(ctx, "/entities/issue", token); !errors.Is(e, boom) {
		t.Errorf("expected injected failure, got: %v", e)
	}

	mem.FailWith(nil)
	if _, e := mem.Get(ctx, "/entities/issue", token); e != nil {
		t.Errorf("expected healed transport to work, got: %v", e)
	}
}

func TestHTTPTransportRequests(t *testing.T) {
	var gotAuth, gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tr, e := NewHTTPTransport(server.URL, 5*time.Second)
	if e != nil {
		t.Fatalf("failed to create transport: %v", e)
	}

	ctx := context.Background()
	token, e := tr.Authenticate(ctx, BearerCredentials("tok-123"))
	if e != nil {
		t.Fatalf("authenticate failed: %v", e)
	}
	if token != Token("tok-123") {
		t.Errorf("expected bearer token pass-through, got %s", token)
	}

	body, e := tr.Get(ctx, "/entities/issue", token)
	if e != nil {
		t.Fatalf("get failed: %v", e)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", body)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotMethod != http.MethodGet || gotPath != "/entities/issue" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}

	if _, e := tr.Put(ctx, "entities/issue/a1", []byte(`{}`), token); e != nil {
		t.Fatalf("put failed: %v", e)
	}
	if gotMethod != http.MethodPut || gotPath != "/entities/issue/a1" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestHTTPTransportErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	tr, e := NewHTTPTransport(server.URL, 5*time.Second)
	if e != nil {
		t.Fatalf("failed to create transport: %v", e)
	}

	_, e = tr.Get(context.Background(), "/entities/issue", Token("t"))
	if e == nil {
		t.Fatal("expected error for 403 response")
	}

	var terr *TransportError
	if !errors.As(e, &terr) {
		t.Fatalf("expected a TransportError, got: %v", e)
	}
	if terr.Status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", terr.Status)
	}
	if !IsTransportFailure(e) {
		t.Error("expected transport failure code")
	}
}

func TestHTTPTransportOAuthExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" {
			http.NotFound(w, r)
			return
		}
		var grant map[string]string
		json.NewDecoder(r.Body).Decode(&grant)
		if grant["refresh_token"] != "refresh-1" {
			http.Error(w, "bad grant", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "session-9"})
	}))
	defer server.Close()

	tr, e := NewHTTPTransport(server.URL, 5*time.Second)
	if e != nil {
		t.Fatalf("failed to create transport: %v", e)
	}

	token, e := tr.Authenticate(context.Background(), OAuthCredentials("client-1", "refresh-1"))
	if e != nil {
		t.Fatalf("oauth authenticate failed: %v", e)
	}
	if token != Token("session-9") {
		t.Errorf("expected session token, got %s", token)
	}
}

func TestHTTPTransportRejectsInvalidBaseURL(t *testing.T) {
	if _, e := NewHTTPTransport("not a url", 0); e == nil {
		t.Error("expected invalid base URL to be rejected")
	}
	if _, e := NewHTTPTransport("/relative/only", 0); e == nil {
		t.Error("expected relative base URL to be rejected")
	}
}
