package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/Klingon-tech/klingnet-wallet/internal/log"
	"github.com/Klingon-tech/klingnet-wallet/internal/storage"
	"github.com/Klingon-tech/klingnet-wallet/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

// Keystore errors.
var (
	ErrWalletExists   = errors.New("wallet already exists")
	ErrWalletNotFound = errors.New("wallet not found")
	ErrInvalidName    = errors.New("invalid wallet name")
)

const (
	recordVersion = 1
	maxNameLen    = 64
)

var (
	walletPrefix = []byte("wallet/")
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// WalletInfo is the public part of a stored wallet. It never contains
// key material.
type WalletInfo struct {
	Name        string            `json:"name"`
	Network     types.Network     `json:"network"`
	KeyType     KeyType           `json:"key_type"`
	Account     uint32            `json:"account"`
	Index       uint32            `json:"index"`
	Address     types.Address     `json:"address"`
	Fingerprint types.Fingerprint `json:"fingerprint"`
	CreatedAt   time.Time         `json:"created_at"`
}

// walletRecord is the stored form of a wallet.
type walletRecord struct {
	Version int `json:"version"`
	WalletInfo
	EncryptedEntropy []byte `json:"encrypted_entropy"`
}

// Keystore keeps password-encrypted wallets in a key-value store.
type Keystore struct {
	db    storage.DB
	owned storage.DB
}

// NewKeystore wraps db. The caller keeps ownership of db.
func NewKeystore(db storage.DB) *Keystore {
	return &Keystore{db: storage.NewPrefixDB(db, walletPrefix)}
}

// OpenKeystore opens (or creates) a Badger-backed keystore in dir.
func OpenKeystore(dir string) (*Keystore, error) {
	db, err := storage.NewBadger(filepath.Clean(dir))
	if err != nil {
		return nil, err
	}
	ks := NewKeystore(db)
	ks.owned = db
	return ks, nil
}

// Close releases the underlying database if the keystore opened it.
func (ks *Keystore) Close() error {
	if ks.owned == nil {
		return nil
	}
	return ks.owned.Close()
}

// ValidateName checks that name is usable as a wallet name.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLen || !namePattern.MatchString(name) {
		return fmt.Errorf("%w %q: use 1-%d characters from A-Z a-z 0-9 . _ -", ErrInvalidName, name, maxNameLen)
	}
	return nil
}

// Create derives the keypair for entropy, encrypts the entropy under
// password and stores it as name.
func (ks *Keystore) Create(name string, entropy mnemonic.Entropy, opts DeriveOptions, network types.Network, password []byte, params EncryptionParams) (*WalletInfo, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	exists, err := ks.db.Has([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("check wallet: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrWalletExists, name)
	}

	kp, err := Derive(entropy, opts)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	addr, err := kp.Address(network)
	if err != nil {
		return nil, err
	}

	done := log.Benchmark("argon2id seal")
	sealed, err := Encrypt(entropy[:], password, params)
	done()
	if err != nil {
		return nil, fmt.Errorf("encrypt entropy: %w", err)
	}

	rec := walletRecord{
		Version: recordVersion,
		WalletInfo: WalletInfo{
			Name:        name,
			Network:     network,
			KeyType:     kp.KeyType(),
			Account:     kp.Account(),
			Index:       kp.Index(),
			Address:     addr,
			Fingerprint: kp.Fingerprint(),
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		},
		EncryptedEntropy: sealed,
	}
	if err := ks.insert(&rec); err != nil {
		return nil, err
	}

	log.Keystore.Info().
		Str("name", name).
		Str("network", string(network)).
		Str("key_type", string(rec.KeyType)).
		Str("fingerprint", rec.Fingerprint.String()).
		Msg("Wallet stored")

	info := rec.WalletInfo
	return &info, nil
}

// Info returns the public metadata of a wallet without decrypting it.
func (ks *Keystore) Info(name string) (*WalletInfo, error) {
	rec, err := ks.get(name)
	if err != nil {
		return nil, err
	}
	info := rec.WalletInfo
	return &info, nil
}

// LoadEntropy decrypts and returns the stored entropy.
func (ks *Keystore) LoadEntropy(name string, password []byte) (mnemonic.Entropy, error) {
	rec, err := ks.get(name)
	if err != nil {
		return mnemonic.Entropy{}, err
	}
	plain, err := Decrypt(rec.EncryptedEntropy, password)
	if err != nil {
		log.Keystore.Warn().Str("name", name).Msg("Unlock failed")
		return mnemonic.Entropy{}, err
	}
	defer wipe(plain)

	var entropy mnemonic.Entropy
	if len(plain) != len(entropy) {
		return mnemonic.Entropy{}, fmt.Errorf("wallet %q: stored entropy is %d bytes", name, len(plain))
	}
	copy(entropy[:], plain)
	return entropy, nil
}

// Unlock decrypts a wallet and re-derives its keypair. The derived address
// must match the stored one.
func (ks *Keystore) Unlock(name string, password []byte) (*Keypair, *WalletInfo, error) {
	rec, err := ks.get(name)
	if err != nil {
		return nil, nil, err
	}
	entropy, err := ks.LoadEntropy(name, password)
	if err != nil {
		return nil, nil, err
	}
	defer entropy.Wipe()

	kp, err := Derive(entropy, DeriveOptions{
		KeyType: rec.KeyType,
		Account: rec.Account,
		Index:   rec.Index,
	})
	if err != nil {
		return nil, nil, err
	}
	addr, err := kp.Address(rec.Network)
	if err != nil {
		kp.Zero()
		return nil, nil, err
	}
	if !addr.Equal(rec.Address) {
		kp.Zero()
		return nil, nil, fmt.Errorf("wallet %q: derived address %s does not match stored %s", name, addr, rec.Address)
	}

	log.Keystore.Debug().Str("name", name).Msg("Wallet unlocked")
	info := rec.WalletInfo
	return kp, &info, nil
}

// List returns all wallets sorted by name.
func (ks *Keystore) List() ([]WalletInfo, error) {
	var out []WalletInfo
	err := ks.db.ForEach(nil, func(key, value []byte) error {
		var rec walletRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("parse wallet %q: %w", key, err)
		}
		out = append(out, rec.WalletInfo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a wallet.
func (ks *Keystore) Delete(name string) error {
	exists, err := ks.db.Has([]byte(name))
	if err != nil {
		return fmt.Errorf("check wallet: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err := ks.db.Delete([]byte(name)); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	log.Keystore.Info().Str("name", name).Msg("Wallet deleted")
	return nil
}

func (ks *Keystore) insert(rec *walletRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	err = ks.db.Insert([]byte(rec.Name), data)
	if errors.Is(err, storage.ErrKeyExists) {
		return fmt.Errorf("%w: %q", ErrWalletExists, rec.Name)
	}
	if err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

func (ks *Keystore) get(name string) (*walletRecord, error) {
	data, err := ks.db.Get([]byte(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var rec walletRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse wallet %q: %w", name, err)
	}
	if rec.Version != recordVersion {
		return nil, fmt.Errorf("unsupported wallet version: %d", rec.Version)
	}
	return &rec, nil
}
