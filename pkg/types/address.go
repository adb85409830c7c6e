package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	sha256 "github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

const (
	// AddressVersion is the leading byte of every address payload.
	AddressVersion byte = 0x00

	checksumSize = 4
)

// ErrBadChecksum is returned by ParseAddress when the checksum does not match.
var ErrBadChecksum = errors.New("address checksum mismatch")

// Address is a public key tagged with its network and algorithm.
//
// Encoding: base58(version | key tag | public key | checksum), where the
// checksum is the first 4 bytes of SHA-256(SHA-256(version | tag | key)).
type Address struct {
	Network   Network
	Algorithm KeyAlgorithm
	PublicKey []byte
}

// NewAddress validates the key length and returns an Address.
func NewAddress(n Network, k KeyAlgorithm, pubKey []byte) (Address, error) {
	if _, err := keyTag(n, k); err != nil {
		return Address{}, err
	}
	if len(pubKey) != k.PublicKeySize() {
		return Address{}, fmt.Errorf("%s public key must be %d bytes, got %d", k, k.PublicKeySize(), len(pubKey))
	}
	pk := make([]byte, len(pubKey))
	copy(pk, pubKey)
	return Address{Network: n, Algorithm: k, PublicKey: pk}, nil
}

// IsZero returns true for the zero Address.
func (a Address) IsZero() bool {
	return a.Network == "" && a.Algorithm == "" && len(a.PublicKey) == 0
}

// Equal reports whether a and b encode the same address.
func (a Address) Equal(b Address) bool {
	return a.Network == b.Network && a.Algorithm == b.Algorithm && bytes.Equal(a.PublicKey, b.PublicKey)
}

// Bytes returns version | tag | public key, without the checksum.
func (a Address) Bytes() ([]byte, error) {
	tag, err := keyTag(a.Network, a.Algorithm)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 2+len(a.PublicKey))
	out = append(out, AddressVersion, tag)
	return append(out, a.PublicKey...), nil
}

// String returns the base58check encoding, or "" for an invalid address.
func (a Address) String() string {
	payload, err := a.Bytes()
	if err != nil {
		return ""
	}
	sum := doubleSHA256(payload)
	return base58.Encode(append(payload, sum[:checksumSize]...))
}

// MarshalJSON encodes the address as a base58 string.
func (a Address) MarshalJSON() ([]byte, error) {
	if a.IsZero() {
		return json.Marshal("")
	}
	s := a.String()
	if s == "" {
		return nil, fmt.Errorf("cannot encode address with network %q and algorithm %q", a.Network, a.Algorithm)
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a base58 address string.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress decodes and validates a base58check address.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid base58 address: %w", err)
	}
	if len(raw) < 2+checksumSize {
		return Address{}, fmt.Errorf("address too short: %d bytes", len(raw))
	}

	payload, check := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	sum := doubleSHA256(payload)
	if !bytes.Equal(sum[:checksumSize], check) {
		return Address{}, ErrBadChecksum
	}
	if payload[0] != AddressVersion {
		return Address{}, fmt.Errorf("unsupported address version %#02x", payload[0])
	}

	n, k, err := parseKeyTag(payload[1])
	if err != nil {
		return Address{}, err
	}
	return NewAddress(n, k, payload[2:])
}

func doubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}
