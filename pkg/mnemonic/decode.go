package mnemonic

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	// PhraseWords is the only accepted phrase length.
	PhraseWords = 12

	// EntropySize is the length of decoded entropy in bytes.
	EntropySize = 32

	// baseSize is the number of bytes actually recovered from a phrase.
	baseSize = EntropySize / 2

	// zeroChecksum is what the mobile wallet always writes in the checksum
	// region instead of a SHA-256 derived value.
	zeroChecksum = "0000"
)

// Entropy is decoded key material. Bytes 16-31 always equal bytes 0-15.
type Entropy [EntropySize]byte

// Base returns the 16 bytes recovered from the phrase.
func (e Entropy) Base() []byte {
	b := make([]byte, baseSize)
	copy(b, e[:baseSize])
	return b
}

// Hex returns the full 32 bytes hex-encoded.
func (e Entropy) Hex() string {
	return hex.EncodeToString(e[:])
}

// Base58 returns the full 32 bytes base58-encoded, as shown by the mobile wallet.
func (e Entropy) Base58() string {
	return base58.Encode(e[:])
}

// Wipe zeroes e.
func (e *Entropy) Wipe() {
	for i := range e {
		e[i] = 0
	}
}

// Decoder decodes phrases against one dictionary. It holds no mutable
// state and is safe for concurrent use.
type Decoder struct {
	dict *Dictionary
}

// NewDecoder returns a Decoder bound to dict.
func NewDecoder(dict *Dictionary) *Decoder {
	return &Decoder{dict: dict}
}

// NewLanguageDecoder returns a Decoder for lang's word list.
func NewLanguageDecoder(lang Language) (*Decoder, error) {
	dict, err := lang.Dictionary()
	if err != nil {
		return nil, err
	}
	return NewDecoder(dict), nil
}

// Decode converts a 12-word English phrase to entropy.
func Decode(words []string) (Entropy, error) {
	d, err := NewLanguageDecoder(English)
	if err != nil {
		return Entropy{}, err
	}
	return d.Decode(words)
}

// DecodeString splits phrase on whitespace and decodes it as English.
func DecodeString(phrase string) (Entropy, error) {
	return Decode(strings.Fields(phrase))
}

// Decode converts a 12-word phrase to entropy. Words are matched
// case-insensitively, and any word may be abbreviated to its first four
// letters.
func (d *Decoder) Decode(words []string) (Entropy, error) {
	if len(words) != PhraseWords {
		return Entropy{}, fmt.Errorf("%w: got %d, want %d", ErrWordCount, len(words), PhraseWords)
	}

	indices := make([]int, len(words))
	for i, w := range words {
		idx, ok := d.dict.Resolve(w)
		if !ok {
			return Entropy{}, &UnknownWordError{Word: w}
		}
		indices[i] = idx
	}

	bits, err := Pack(indices)
	if err != nil {
		return Entropy{}, err
	}
	return entropyFromBits(bits)
}

// entropyFromBits splits a packed bit stream into entropy and checksum
// regions, requires the zero checksum, and mirrors the recovered bytes.
func entropyFromBits(bits string) (Entropy, error) {
	// 32 entropy bits per checksum bit: 132 bits split at 128.
	divider := len(bits) * 32 / 33
	entropyBits, checksumBits := bits[:divider], bits[divider:]
	if checksumBits != zeroChecksum {
		return Entropy{}, fmt.Errorf("%w: checksum bits %q", ErrChecksum, checksumBits)
	}

	base, err := UnpackBytes(entropyBits, 8)
	if err != nil {
		return Entropy{}, err
	}
	if len(base) != baseSize {
		return Entropy{}, fmt.Errorf("recovered %d entropy bytes, want %d", len(base), baseSize)
	}

	var out Entropy
	copy(out[:baseSize], base)
	copy(out[baseSize:], base)
	return out, nil
}
