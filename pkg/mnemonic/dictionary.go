package mnemonic

import "fmt"

// prefixLen is how many leading characters identify a word. BIP-39 lists
// are built so the first four letters are unambiguous.
const prefixLen = 4

// Dictionary is an immutable, ordered word list. A word's position is its
// 11-bit code.
//
// Lookups go through two precomputed maps instead of scanning the list;
// both keep the lowest index for a key, so the result matches a linear
// scan in index order.
type Dictionary struct {
	words  []string
	exact  map[string]int
	prefix map[string]int
}

// NewDictionary builds a Dictionary from exactly DictionarySize lowercase
// words. The slice is copied.
func NewDictionary(words []string) (*Dictionary, error) {
	if len(words) != DictionarySize {
		return nil, fmt.Errorf("word list must have %d words, got %d", DictionarySize, len(words))
	}
	d := &Dictionary{
		words:  make([]string, len(words)),
		exact:  make(map[string]int, len(words)),
		prefix: make(map[string]int, len(words)),
	}
	copy(d.words, words)
	for i, w := range d.words {
		if _, ok := d.exact[w]; !ok {
			d.exact[w] = i
		}
		if len(w) >= prefixLen {
			p := w[:prefixLen]
			if _, ok := d.prefix[p]; !ok {
				d.prefix[p] = i
			}
		}
	}
	return d, nil
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the word at index i.
func (d *Dictionary) Word(i int) (string, bool) {
	if i < 0 || i >= len(d.words) {
		return "", false
	}
	return d.words[i], true
}

// Resolve returns the index of a user-typed word.
//
// The input is ASCII-lowercased. A dictionary word matches when both words
// are at least four characters long and share their first four characters,
// or when the two are exactly equal. The lowest matching index wins.
func (d *Dictionary) Resolve(userWord string) (int, bool) {
	w := asciiLower(userWord)

	best := -1
	if idx, ok := d.exact[w]; ok {
		best = idx
	}
	if len(w) >= prefixLen {
		if idx, ok := d.prefix[w[:prefixLen]]; ok && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best, best >= 0
}

// asciiLower lowercases A-Z only. Unicode case folding would let
// look-alike runes (e.g. the Kelvin sign) match dictionary words.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
