package wallet

import (
	"errors"

	"github.com/Klingon-tech/klingnet-wallet/internal/log"
	"github.com/Klingon-tech/klingnet-wallet/pkg/mnemonic"
)

// DecodePhrase decodes a 12-word phrase against lang's word list.
// Failures are logged by kind only; words never reach the log.
func DecodePhrase(words []string, lang mnemonic.Language) (mnemonic.Entropy, error) {
	dec, err := mnemonic.NewLanguageDecoder(lang)
	if err != nil {
		return mnemonic.Entropy{}, err
	}
	entropy, err := dec.Decode(words)
	if err != nil {
		log.Wallet.Debug().
			Str("language", lang.String()).
			Int("words", len(words)).
			Str("kind", decodeErrorKind(err)).
			Msg("Phrase rejected")
		return mnemonic.Entropy{}, err
	}
	return entropy, nil
}

// Restore decodes an English phrase and derives the keypair selected by opts.
// The intermediate entropy is wiped before returning.
func Restore(words []string, opts DeriveOptions) (*Keypair, error) {
	entropy, err := DecodePhrase(words, mnemonic.English)
	if err != nil {
		return nil, err
	}
	defer entropy.Wipe()

	kp, err := Derive(entropy, opts)
	if err != nil {
		return nil, err
	}
	log.Wallet.Debug().
		Str("key_type", string(kp.KeyType())).
		Str("fingerprint", kp.Fingerprint().String()).
		Msg("Keypair restored")
	return kp, nil
}

func decodeErrorKind(err error) string {
	switch {
	case errors.Is(err, mnemonic.ErrWordCount):
		return "word_count"
	case errors.Is(err, mnemonic.ErrUnknownWord):
		return "unknown_word"
	case errors.Is(err, mnemonic.ErrChecksum):
		return "checksum"
	default:
		return "other"
	}
}
