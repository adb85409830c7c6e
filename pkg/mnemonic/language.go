// Package mnemonic decodes 12-word mobile-wallet recovery phrases into the
// 32-byte entropy used for key derivation.
//
// The phrase format follows the BIP-39 English word list, but the paired
// mobile wallet never computes a real checksum: the trailing four bits are
// always zero. Decoded entropy is 128 bits long and is mirrored into both
// halves of the 256-bit output.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// DictionarySize is the number of words in every supported word list.
const DictionarySize = 2048

// ErrUnsupportedLanguage is returned for a Language with no word list.
var ErrUnsupportedLanguage = errors.New("unsupported mnemonic language")

// Language selects the word list a phrase is decoded against.
type Language int

const (
	English Language = iota
)

// String returns the lowercase language name.
func (l Language) String() string {
	switch l {
	case English:
		return "english"
	default:
		return fmt.Sprintf("language(%d)", int(l))
	}
}

// ParseLanguage maps a case-insensitive name to a Language.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "english", "en":
		return English, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
}

var english = sync.OnceValues(func() (*Dictionary, error) {
	return NewDictionary(wordlists.English)
})

// Dictionary returns the shared, read-only word list for l.
func (l Language) Dictionary() (*Dictionary, error) {
	switch l {
	case English:
		return english()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, l)
	}
}
