package mnemonic

import (
	"errors"
	"fmt"
)

var (
	// ErrWordCount means the phrase does not have exactly PhraseWords words.
	ErrWordCount = errors.New("invalid number of seed words")
	// ErrUnknownWord means a phrase word matched no dictionary entry.
	ErrUnknownWord = errors.New("seed word not found in wordlist")
	// ErrChecksum means the trailing checksum bits are not all zero.
	ErrChecksum = errors.New("invalid checksum")
)

// UnknownWordError names the phrase word that failed to resolve.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("seed word %q not found in wordlist", e.Word)
}

func (e *UnknownWordError) Unwrap() error {
	return ErrUnknownWord
}
