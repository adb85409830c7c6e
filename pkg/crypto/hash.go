// Package crypto provides the signing keys and hashes used by restored wallets.
package crypto

import (
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// Fingerprint identifies a public key: BLAKE3(pubkey)[:8].
func Fingerprint(pubKey []byte) types.Fingerprint {
	return Hash(pubKey).Fingerprint()
}
