package crypto

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
)

// Signer signs messages with a private key.
type Signer interface {
	// Sign produces a signature over msg.
	Sign(msg []byte) ([]byte, error)
	// PublicKey returns the encoded public key.
	PublicKey() []byte
	// Algorithm reports the key's signature algorithm.
	Algorithm() types.KeyAlgorithm
	// Zero wipes the private key.
	Zero()
}

// Verify checks sig over msg for the given algorithm and public key.
// Returns false on any error.
func Verify(algo types.KeyAlgorithm, msg, sig, pubKey []byte) bool {
	switch algo {
	case types.Ed25519:
		return VerifyEd25519(msg, sig, pubKey)
	case types.Secp256k1:
		h := Hash(msg)
		return VerifySignature(h[:], sig, pubKey)
	default:
		return false
	}
}

// PrivateKey wraps a secp256k1 private key for Schnorr signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
// The secret is reduced modulo the curve order; a zero result is rejected.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	if key.Key.IsZero() {
		return nil, fmt.Errorf("private key is zero modulo the curve order")
	}
	return &PrivateKey{key: key}, nil
}

// Sign produces a Schnorr signature over BLAKE3(msg).
func (pk *PrivateKey) Sign(msg []byte) ([]byte, error) {
	h := Hash(msg)
	return pk.SignHash(h[:])
}

// SignHash produces a Schnorr signature over a 32-byte hash.
func (pk *PrivateKey) SignHash(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	sig, err := schnorr.Sign(pk.key, hash)
	if err != nil {
		return nil, fmt.Errorf("schnorr sign: %w", err)
	}
	return sig.Serialize(), nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Algorithm returns types.Secp256k1.
func (pk *PrivateKey) Algorithm() types.KeyAlgorithm {
	return types.Secp256k1
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a Schnorr signature against a 32-byte hash
// and a compressed public key. Returns false on any error.
func VerifySignature(hash, signature, publicKey []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(hash, pubKey)
}
