// Package types defines the primitive types shared by the wallet packages.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// FingerprintSize is the length of a key fingerprint in bytes.
const FingerprintSize = 8

// Hash represents a 256-bit hash value.
type Hash [HashSize]byte

// Fingerprint is a short public key identifier shown next to wallet names.
type Fingerprint [FingerprintSize]byte

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex-encoded hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Fingerprint returns the first FingerprintSize bytes of h.
func (h Hash) Fingerprint() Fingerprint {
	var f Fingerprint
	copy(f[:], h[:FingerprintSize])
	return f
}

// String returns the hex-encoded fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// MarshalJSON encodes the fingerprint as a hex string.
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes a hex string into a fingerprint.
func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFingerprint(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFingerprint converts a 16-character hex string to a Fingerprint.
func ParseFingerprint(s string) (Fingerprint, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("invalid fingerprint hex: %w", err)
	}
	if len(b) != FingerprintSize {
		return Fingerprint{}, fmt.Errorf("fingerprint must be %d bytes, got %d", FingerprintSize, len(b))
	}
	var f Fingerprint
	copy(f[:], b)
	return f, nil
}
