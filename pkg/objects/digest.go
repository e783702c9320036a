package objects

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest represents a SHA-256 content fingerprint (64-character hex string)
// Example: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
type Digest string

// ShortDigest represents an abbreviated digest (typically 8 characters)
// Example: "9f86d081"
type ShortDigest string

const (
	// DigestLength is the length of a full SHA-256 digest in hex (64 characters)
	DigestLength = 64
	// ShortDigestLength is the default length for abbreviated digests (8 characters)
	ShortDigestLength = 8
	// FanoutLength is the number of leading hex characters used as the
	// object directory name
	FanoutLength = 2
)

// NewDigest computes the Digest of a byte slice
func NewDigest(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest(hex.EncodeToString(sum[:]))
}

// ParseDigest creates a Digest from a hex string
// Returns an error if the string is not a valid digest
func ParseDigest(s string) (Digest, error) {
	d := Digest(strings.ToLower(s))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// String returns the digest as a string
func (d Digest) String() string {
	return string(d)
}

// IsValid returns true if this is a valid SHA-256 digest
func (d Digest) IsValid() bool {
	return d.Validate() == nil
}

// Validate checks if the digest is valid
func (d Digest) Validate() error {
	if len(d) != DigestLength {
		return fmt.Errorf("digest must be %d characters long, got %d", DigestLength, len(d))
	}

	for _, c := range d {
		if !isHexChar(c) {
			return fmt.Errorf("digest must contain only lowercase hex characters, found %q", c)
		}
	}

	return nil
}

// Short returns the abbreviated version of the digest
func (d Digest) Short() ShortDigest {
	if len(d) >= ShortDigestLength {
		return ShortDigest(d[:ShortDigestLength])
	}
	return ShortDigest(d)
}

// Fanout splits the digest into its directory prefix and remainder,
// matching the on-disk objects layout objects/<prefix>/<rest>
func (d Digest) Fanout() (prefix string, rest string) {
	s := string(d)
	if len(s) <= FanoutLength {
		return s, ""
	}
	return s[:FanoutLength], s[FanoutLength:]
}

// Bytes returns the digest as a byte slice (decoded from hex)
func (d Digest) Bytes() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(d))
}

// Equal compares two digests for equality
func (d Digest) Equal(other Digest) bool {
	return strings.EqualFold(string(d), string(other))
}

// HasPrefix returns true if the digest starts with the given prefix
func (d Digest) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(d), strings.ToLower(prefix))
}

// MarshalText implements encoding.TextMarshaler
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ShortDigest methods

// String returns the short digest as a string
func (sd ShortDigest) String() string {
	return string(sd)
}

// Matches returns true if the full digest starts with this short digest
func (sd ShortDigest) Matches(d Digest) bool {
	return d.HasPrefix(string(sd))
}

// isHexChar returns true if the character is a valid lowercase hex character
func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
