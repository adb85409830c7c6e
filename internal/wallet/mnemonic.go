package wallet

import (
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// IsStandardMnemonic reports whether words form a valid BIP-39 phrase with
// a real SHA-256 checksum. Mobile-wallet phrases always carry a zero
// checksum, so a phrase rejected by the decoder for its checksum but valid
// here most likely came from a different wallet.
func IsStandardMnemonic(words []string) bool {
	return bip39.IsMnemonicValid(strings.ToLower(strings.Join(words, " ")))
}
