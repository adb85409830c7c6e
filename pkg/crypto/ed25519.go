package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

// Ed25519Key is an Ed25519 signing key derived from a 32-byte seed.
type Ed25519Key struct {
	priv ed25519.PrivateKey
}

// Ed25519FromSeed expands a 32-byte seed into a signing key.
func Ed25519FromSeed(seed []byte) (*Ed25519Key, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Ed25519Key{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign signs msg directly; Ed25519 hashes internally.
func (k *Ed25519Key) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, msg), nil
}

// PublicKey returns the 32-byte public key.
func (k *Ed25519Key) PublicKey() []byte {
	pub := k.priv.Public().(ed25519.PublicKey)
	out := make([]byte, len(pub))
	copy(out, pub)
	return out
}

// Algorithm returns types.Ed25519.
func (k *Ed25519Key) Algorithm() types.KeyAlgorithm {
	return types.Ed25519
}

// Seed returns a copy of the 32-byte seed.
func (k *Ed25519Key) Seed() []byte {
	return k.priv.Seed()
}

// Zero wipes the private key bytes.
func (k *Ed25519Key) Zero() {
	for i := range k.priv {
		k.priv[i] = 0
	}
}

// VerifyEd25519 checks an Ed25519 signature. Returns false on malformed input.
func VerifyEd25519(msg, sig, pubKey []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), msg, sig)
}
