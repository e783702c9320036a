package transport

import (
	"context"
)

// Token is an opaque session credential returned by Authenticate and
// presented on every subsequent request.
type Token string

// IsValid checks whether the token is non-empty
func (t Token) IsValid() bool {
	return t != ""
}

// Transport is the abstract network capability the sync engine consumes.
// Implementations own all wire-level detail (TLS, connection reuse,
// retries if any); the engine treats every returned error as fatal to
// the operation in flight.
type Transport interface {
	// Authenticate exchanges credentials for a session token
	Authenticate(ctx context.Context, creds Credentials) (Token, error)

	// Get fetches the resource at path
	Get(ctx context.Context, path string, token Token) ([]byte, error)

	// Post creates a resource at path and returns the response body
	Post(ctx context.Context, path string, body []byte, token Token) ([]byte, error)

	// Put replaces the resource at path and returns the response body
	Put(ctx context.Context, path string, body []byte, token Token) ([]byte, error)

	// Delete removes the resource at path
	Delete(ctx context.Context, path string, token Token) error
}

// CredentialKind discriminates the supported authentication methods
type CredentialKind string

const (
	// CredentialSSHKey authenticates with an on-disk private key
	CredentialSSHKey CredentialKind = "ssh_key"

	// CredentialBearer authenticates with a pre-issued bearer token
	CredentialBearer CredentialKind = "bearer"

	// CredentialOAuth authenticates with an OAuth refresh grant
	CredentialOAuth CredentialKind = "oauth"
)

// Credentials carries one of the supported authentication methods.
// Only the fields of the selected Kind are consulted.
type Credentials struct {
	Kind CredentialKind

	// SSH key fields
	KeyPath    string
	Passphrase string

	// Bearer fields
	BearerToken string

	// OAuth fields
	ClientID     string
	RefreshToken string
}

// SSHKeyCredentials builds credentials for an on-disk private key.
// Passphrase may be empty for unencrypted keys.
func SSHKeyCredentials(keyPath, passphrase string) Credentials {
	return Credentials{Kind: CredentialSSHKey, KeyPath: keyPath, Passphrase: passphrase}
}

// BearerCredentials builds credentials from a pre-issued token
func BearerCredentials(token string) Credentials {
	return Credentials{Kind: CredentialBearer, BearerToken: token}
}

// OAuthCredentials builds credentials for an OAuth refresh grant
func OAuthCredentials(clientID, refreshToken string) Credentials {
	return Credentials{Kind: CredentialOAuth, ClientID: clientID, RefreshToken: refreshToken}
}

// Validate checks that the fields required by the selected kind are set
func (c Credentials) Validate() error {
	switch c.Kind {
	case CredentialSSHKey:
		if c.KeyPath == "" {
			return ErrMissingCredentials
		}
	case CredentialBearer:
		if c.BearerToken == "" {
			return ErrMissingCredentials
		}
	case CredentialOAuth:
		if c.ClientID == "" || c.RefreshToken == "" {
			return ErrMissingCredentials
		}
	default:
		return ErrUnknownCredentialKind
	}
	return nil
}
