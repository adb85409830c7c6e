package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-wallet/pkg/crypto"
	"github.com/Klingon-tech/klingnet-wallet/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

// DeriveOptions control how entropy becomes a keypair.
type DeriveOptions struct {
	KeyType KeyType
	// Account and Index select the BIP-44 child for KeyBIP32 and must be
	// zero otherwise.
	Account uint32
	Index   uint32
}

func (o DeriveOptions) normalize() (DeriveOptions, error) {
	kt, err := ParseKeyType(string(o.KeyType))
	if err != nil {
		return o, err
	}
	o.KeyType = kt
	if !kt.Hierarchical() && (o.Account != 0 || o.Index != 0) {
		return o, fmt.Errorf("account and index only apply to %s keys", KeyBIP32)
	}
	return o, nil
}

// Keypair is a signing key restored from a phrase.
type Keypair struct {
	keyType KeyType
	account uint32
	index   uint32
	signer  crypto.Signer
}

// Derive builds the keypair selected by opts from entropy.
func Derive(entropy mnemonic.Entropy, opts DeriveOptions) (*Keypair, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	var signer crypto.Signer
	switch opts.KeyType {
	case KeyEd25519:
		signer, err = crypto.Ed25519FromSeed(entropy[:])
	case KeySecp256k1:
		signer, err = crypto.PrivateKeyFromBytes(entropy[:])
	case KeyBIP32:
		signer, err = deriveBIP32(entropy, opts.Account, opts.Index)
	}
	if err != nil {
		return nil, fmt.Errorf("derive %s key: %w", opts.KeyType, err)
	}

	return &Keypair{
		keyType: opts.KeyType,
		account: opts.Account,
		index:   opts.Index,
		signer:  signer,
	}, nil
}

func deriveBIP32(entropy mnemonic.Entropy, account, index uint32) (*crypto.PrivateKey, error) {
	master, err := NewMasterKey(entropy[:])
	if err != nil {
		return nil, err
	}
	child, err := master.DeriveAccount(account, index)
	if err != nil {
		return nil, err
	}
	return child.Signer()
}

// KeyType returns how the keypair was derived.
func (k *Keypair) KeyType() KeyType {
	return k.keyType
}

// Account returns the BIP-44 account (zero for non-hierarchical keys).
func (k *Keypair) Account() uint32 {
	return k.account
}

// Index returns the BIP-44 address index (zero for non-hierarchical keys).
func (k *Keypair) Index() uint32 {
	return k.index
}

// PublicKey returns the encoded public key.
func (k *Keypair) PublicKey() []byte {
	return k.signer.PublicKey()
}

// Sign signs msg with the private key.
func (k *Keypair) Sign(msg []byte) ([]byte, error) {
	return k.signer.Sign(msg)
}

// Verify checks a signature made by this keypair.
func (k *Keypair) Verify(msg, sig []byte) bool {
	return crypto.Verify(k.signer.Algorithm(), msg, sig, k.signer.PublicKey())
}

// Address returns the keypair's address on network n.
func (k *Keypair) Address(n types.Network) (types.Address, error) {
	return types.NewAddress(n, k.signer.Algorithm(), k.signer.PublicKey())
}

// Fingerprint returns the short public key identifier.
func (k *Keypair) Fingerprint() types.Fingerprint {
	return crypto.Fingerprint(k.signer.PublicKey())
}

// Zero wipes the private key.
func (k *Keypair) Zero() {
	k.signer.Zero()
}
