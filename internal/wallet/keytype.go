// Package wallet restores signing keys from mobile-wallet recovery phrases
// and keeps them encrypted at rest.
package wallet

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

// KeyType selects how a keypair is derived from decoded entropy.
type KeyType string

const (
	// KeyEd25519 uses the 32 entropy bytes as an Ed25519 seed. This is
	// what the mobile wallet does.
	KeyEd25519 KeyType = "ed25519"
	// KeySecp256k1 uses the 32 entropy bytes as a secp256k1 scalar.
	KeySecp256k1 KeyType = "secp256k1"
	// KeyBIP32 treats the entropy as a BIP-32 seed and derives the
	// secp256k1 key at m/44'/8888'/account'/0/index.
	KeyBIP32 KeyType = "bip32"
)

// DefaultKeyType is used when no key type is configured.
const DefaultKeyType = KeyEd25519

// ParseKeyType accepts a key type name in any case. Empty means DefaultKeyType.
func ParseKeyType(s string) (KeyType, error) {
	switch kt := KeyType(strings.ToLower(strings.TrimSpace(s))); kt {
	case "":
		return DefaultKeyType, nil
	case KeyEd25519, KeySecp256k1, KeyBIP32:
		return kt, nil
	default:
		return "", fmt.Errorf("unknown key type %q (want %s, %s or %s)", s, KeyEd25519, KeySecp256k1, KeyBIP32)
	}
}

// Algorithm returns the signature algorithm of keys of this type.
func (k KeyType) Algorithm() types.KeyAlgorithm {
	switch k {
	case KeySecp256k1, KeyBIP32:
		return types.Secp256k1
	default:
		return types.Ed25519
	}
}

// Hierarchical reports whether account and index apply to this key type.
func (k KeyType) Hierarchical() bool {
	return k == KeyBIP32
}
