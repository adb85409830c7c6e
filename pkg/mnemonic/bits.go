package mnemonic

import (
	"fmt"
	"strconv"
	"strings"
)

// BitsPerWord is the width of one word index in the bit stream.
const BitsPerWord = 11

// Pack renders each index as an 11-character, MSB-first, zero-padded
// binary string and concatenates them in order.
func Pack(indices []int) (string, error) {
	var sb strings.Builder
	sb.Grow(len(indices) * BitsPerWord)
	for i, idx := range indices {
		if idx < 0 || idx >= DictionarySize {
			return "", fmt.Errorf("index %d at position %d out of range [0, %d)", idx, i, DictionarySize)
		}
		fmt.Fprintf(&sb, "%0*b", BitsPerWord, idx)
	}
	return sb.String(), nil
}

// UnpackBytes splits bits into consecutive groups of groupSize characters
// (the last group may be shorter), parses each as base 2 and truncates it
// to a byte.
func UnpackBytes(bits string, groupSize int) ([]byte, error) {
	if groupSize <= 0 || groupSize > 64 {
		return nil, fmt.Errorf("group size %d out of range [1, 64]", groupSize)
	}
	out := make([]byte, 0, (len(bits)+groupSize-1)/groupSize)
	for start := 0; start < len(bits); start += groupSize {
		end := min(start+groupSize, len(bits))
		v, err := strconv.ParseUint(bits[start:end], 2, 64)
		if err != nil {
			return nil, fmt.Errorf("bit group at offset %d: %w", start, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
