package types

import (
	"fmt"
	"strings"
)

// Network identifies mainnet or testnet. It is encoded in every address.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// ParseNetwork accepts "mainnet" or "testnet" in any case.
func ParseNetwork(s string) (Network, error) {
	switch Network(strings.ToLower(strings.TrimSpace(s))) {
	case Mainnet:
		return Mainnet, nil
	case Testnet:
		return Testnet, nil
	default:
		return "", fmt.Errorf("unknown network %q (want %q or %q)", s, Mainnet, Testnet)
	}
}

// KeyAlgorithm is the signature algorithm of an address's public key.
type KeyAlgorithm string

const (
	Ed25519   KeyAlgorithm = "ed25519"
	Secp256k1 KeyAlgorithm = "secp256k1"
)

// PublicKeySize returns the encoded public key length for the algorithm.
func (k KeyAlgorithm) PublicKeySize() int {
	switch k {
	case Ed25519:
		return 32
	case Secp256k1:
		return 33
	default:
		return 0
	}
}

// Key tag layout: high nibble = network, low nibble = algorithm.
const (
	tagMainnet   byte = 0x00
	tagTestnet   byte = 0x10
	tagEd25519   byte = 0x01
	tagSecp256k1 byte = 0x02
)

func keyTag(n Network, k KeyAlgorithm) (byte, error) {
	var tag byte
	switch n {
	case Mainnet:
		tag = tagMainnet
	case Testnet:
		tag = tagTestnet
	default:
		return 0, fmt.Errorf("unknown network %q", n)
	}
	switch k {
	case Ed25519:
		tag |= tagEd25519
	case Secp256k1:
		tag |= tagSecp256k1
	default:
		return 0, fmt.Errorf("unknown key algorithm %q", k)
	}
	return tag, nil
}

func parseKeyTag(tag byte) (Network, KeyAlgorithm, error) {
	var (
		n Network
		k KeyAlgorithm
	)
	switch tag & 0xf0 {
	case tagMainnet:
		n = Mainnet
	case tagTestnet:
		n = Testnet
	default:
		return "", "", fmt.Errorf("unknown network in key tag %#02x", tag)
	}
	switch tag & 0x0f {
	case tagEd25519:
		k = Ed25519
	case tagSecp256k1:
		k = Secp256k1
	default:
		return "", "", fmt.Errorf("unknown key algorithm in key tag %#02x", tag)
	}
	return n, k, nil
}
