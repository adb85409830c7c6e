package mnemonic

import (
	"errors"
	"fmt"
	"testing"
)

// syntheticWords returns DictionarySize words "w0000".."w2047" with the
// given overrides applied. Every run of ten shares a 4-letter prefix.
func syntheticWords(overrides map[int]string) []string {
	words := make([]string, DictionarySize)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}
	for i, w := range overrides {
		words[i] = w
	}
	return words
}

func TestEnglishDictionary(t *testing.T) {
	dict, err := English.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary() error: %v", err)
	}
	if dict.Len() != DictionarySize {
		t.Errorf("Len() = %d, want %d", dict.Len(), DictionarySize)
	}

	tests := []struct {
		index int
		word  string
	}{
		{0, "abandon"},
		{1, "ability"},
		{2047, "zoo"},
	}
	for _, tt := range tests {
		w, ok := dict.Word(tt.index)
		if !ok || w != tt.word {
			t.Errorf("Word(%d) = %q, %v, want %q", tt.index, w, ok, tt.word)
		}
	}

	if _, ok := dict.Word(-1); ok {
		t.Error("Word(-1) should not be found")
	}
	if _, ok := dict.Word(DictionarySize); ok {
		t.Errorf("Word(%d) should not be found", DictionarySize)
	}
}

func TestEnglishDictionary_Shared(t *testing.T) {
	a, err := English.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary() error: %v", err)
	}
	b, err := English.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary() error: %v", err)
	}
	if a != b {
		t.Error("English.Dictionary() should return the same instance")
	}
}

func TestNewDictionary_WrongSize(t *testing.T) {
	if _, err := NewDictionary([]string{"abandon", "ability"}); err == nil {
		t.Error("NewDictionary() should reject a short word list")
	}
	if _, err := NewDictionary(append(syntheticWords(nil), "extra")); err == nil {
		t.Error("NewDictionary() should reject a long word list")
	}
}

func TestResolve_English(t *testing.T) {
	dict, err := English.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary() error: %v", err)
	}

	tests := []struct {
		word  string
		index int
		found bool
	}{
		{"abandon", 0, true},
		{"ABANDON", 0, true},
		{"aban", 0, true},
		{"abandonment", 0, true},
		{"abanxyz", 0, true},
		{"zoo", 2047, true},
		{"ZOO", 2047, true},
		{"zoom", -1, false},
		{"aba", -1, false},
		{"", -1, false},
		{"zzzzz", -1, false},
		{"catch", 288, true},
		{"catc", 288, true},
		{"allo", 53, true},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			idx, ok := dict.Resolve(tt.word)
			if ok != tt.found {
				t.Fatalf("Resolve(%q) found = %v, want %v", tt.word, ok, tt.found)
			}
			if ok && idx != tt.index {
				t.Errorf("Resolve(%q) = %d, want %d", tt.word, idx, tt.index)
			}
		})
	}
}

func TestResolve_AllEnglishWords(t *testing.T) {
	dict, err := English.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary() error: %v", err)
	}
	for i := 0; i < dict.Len(); i++ {
		w, _ := dict.Word(i)
		if idx, ok := dict.Resolve(w); !ok || idx != i {
			t.Fatalf("Resolve(%q) = %d, %v, want %d", w, idx, ok, i)
		}
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	dict, err := NewDictionary(syntheticWords(nil))
	if err != nil {
		t.Fatalf("NewDictionary() error: %v", err)
	}

	tests := []struct {
		word  string
		index int
	}{
		// "w000x" all share prefix "w000": the lowest index wins.
		{"w0005", 0},
		{"w0009", 0},
		{"w0012", 10},
		{"W2047", 2040},
	}
	for _, tt := range tests {
		if idx, ok := dict.Resolve(tt.word); !ok || idx != tt.index {
			t.Errorf("Resolve(%q) = %d, %v, want %d", tt.word, idx, ok, tt.index)
		}
	}
}

func TestResolve_PrefixBeforeExact(t *testing.T) {
	dict, err := NewDictionary(syntheticWords(map[int]string{
		3: "abcdx",
		7: "abcd",
	}))
	if err != nil {
		t.Fatalf("NewDictionary() error: %v", err)
	}
	// Index 3 matches by prefix before index 7 matches exactly.
	if idx, ok := dict.Resolve("abcd"); !ok || idx != 3 {
		t.Errorf("Resolve(%q) = %d, %v, want 3", "abcd", idx, ok)
	}
}

func TestResolve_ShortWords(t *testing.T) {
	dict, err := NewDictionary(syntheticWords(map[int]string{
		5:  "cat",
		9:  "category",
		12: "ox",
	}))
	if err != nil {
		t.Fatalf("NewDictionary() error: %v", err)
	}

	tests := []struct {
		word  string
		index int
		found bool
	}{
		{"cat", 5, true},
		{"CAT", 5, true},
		{"cate", 9, true},
		{"ca", -1, false},
		{"ox", 12, true},
		{"o", -1, false},
	}
	for _, tt := range tests {
		idx, ok := dict.Resolve(tt.word)
		if ok != tt.found || (ok && idx != tt.index) {
			t.Errorf("Resolve(%q) = %d, %v, want %d, %v", tt.word, idx, ok, tt.index, tt.found)
		}
	}
}

func TestResolve_ASCIIOnlyCaseFolding(t *testing.T) {
	dict, err := English.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary() error: %v", err)
	}
	// U+212A KELVIN SIGN lowercases to "k" under Unicode rules.
	if _, ok := dict.Resolve("\u212Aite"); ok {
		t.Error("Resolve() should not fold non-ASCII letters")
	}
}

func TestLanguage(t *testing.T) {
	if English.String() != "english" {
		t.Errorf("English.String() = %q, want %q", English.String(), "english")
	}

	for _, name := range []string{"english", "English", " EN "} {
		lang, err := ParseLanguage(name)
		if err != nil {
			t.Fatalf("ParseLanguage(%q) error: %v", name, err)
		}
		if lang != English {
			t.Errorf("ParseLanguage(%q) = %v, want english", name, lang)
		}
	}

	if _, err := ParseLanguage("klingon"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("ParseLanguage() error = %v, want ErrUnsupportedLanguage", err)
	}
	if _, err := Language(42).Dictionary(); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("Dictionary() error = %v, want ErrUnsupportedLanguage", err)
	}
	if _, err := NewLanguageDecoder(Language(42)); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("NewLanguageDecoder() error = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestDecoder_CustomDictionary(t *testing.T) {
	dict, err := NewDictionary(syntheticWords(nil))
	if err != nil {
		t.Fatalf("NewDictionary() error: %v", err)
	}
	d := NewDecoder(dict)

	words := []string{
		"w2047", "w2047", "w2047", "w2047", "w2047", "w2047",
		"w2047", "w2047", "w2047", "w2047", "w2047", "w0000",
	}
	// "w2047" resolves to 2040 (prefix "w204").
	indices := []int{2040, 2040, 2040, 2040, 2040, 2040, 2040, 2040, 2040, 2040, 2040, 0}
	got, err := d.Decode(words)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if want := expectedEntropy(indices); got != want {
		t.Errorf("Decode() = %x, want %x", got[:], want[:])
	}
}
