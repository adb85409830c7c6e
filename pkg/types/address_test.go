package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mr-tron/base58"
)

func testKey(size int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, size)
}

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name    string
		network Network
		algo    KeyAlgorithm
		key     []byte
		wantErr bool
	}{
		{"ed25519 mainnet", Mainnet, Ed25519, testKey(32, 1), false},
		{"secp256k1 testnet", Testnet, Secp256k1, testKey(33, 2), false},
		{"ed25519 short key", Mainnet, Ed25519, testKey(31, 1), true},
		{"secp256k1 uncompressed", Mainnet, Secp256k1, testKey(65, 4), true},
		{"unknown network", Network("devnet"), Ed25519, testKey(32, 1), true},
		{"unknown algorithm", Mainnet, KeyAlgorithm("rsa"), testKey(32, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.network, tt.algo, tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAddress_CopiesKey(t *testing.T) {
	key := testKey(32, 7)
	a, err := NewAddress(Mainnet, Ed25519, key)
	if err != nil {
		t.Fatalf("NewAddress() error: %v", err)
	}
	key[0] = 0xff
	if a.PublicKey[0] != 7 {
		t.Error("NewAddress() should copy the public key")
	}
}

func TestAddress_Roundtrip(t *testing.T) {
	tests := []struct {
		network Network
		algo    KeyAlgorithm
	}{
		{Mainnet, Ed25519},
		{Testnet, Ed25519},
		{Mainnet, Secp256k1},
		{Testnet, Secp256k1},
	}
	for _, tt := range tests {
		t.Run(string(tt.network)+"/"+string(tt.algo), func(t *testing.T) {
			a, err := NewAddress(tt.network, tt.algo, testKey(tt.algo.PublicKeySize(), 0x5a))
			if err != nil {
				t.Fatalf("NewAddress() error: %v", err)
			}
			s := a.String()
			if s == "" {
				t.Fatal("String() returned empty")
			}
			parsed, err := ParseAddress(s)
			if err != nil {
				t.Fatalf("ParseAddress(%q) error: %v", s, err)
			}
			if !parsed.Equal(a) {
				t.Errorf("ParseAddress() = %+v, want %+v", parsed, a)
			}
		})
	}
}

func TestAddress_Layout(t *testing.T) {
	a, err := NewAddress(Testnet, Ed25519, testKey(32, 0x11))
	if err != nil {
		t.Fatalf("NewAddress() error: %v", err)
	}
	raw, err := base58.Decode(a.String())
	if err != nil {
		t.Fatalf("base58.Decode() error: %v", err)
	}
	if len(raw) != 2+32+4 {
		t.Fatalf("decoded length = %d, want %d", len(raw), 38)
	}
	if raw[0] != AddressVersion {
		t.Errorf("version = %#02x, want %#02x", raw[0], AddressVersion)
	}
	if raw[1] != 0x11 {
		t.Errorf("key tag = %#02x, want 0x11", raw[1])
	}
	if !bytes.Equal(raw[2:34], testKey(32, 0x11)) {
		t.Error("public key bytes not embedded verbatim")
	}
}

func TestAddress_NetworksDiffer(t *testing.T) {
	key := testKey(32, 3)
	main, _ := NewAddress(Mainnet, Ed25519, key)
	test, _ := NewAddress(Testnet, Ed25519, key)
	if main.String() == test.String() {
		t.Error("mainnet and testnet addresses should differ")
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	a, err := NewAddress(Mainnet, Ed25519, testKey(32, 9))
	if err != nil {
		t.Fatalf("NewAddress() error: %v", err)
	}
	raw, _ := base58.Decode(a.String())

	flipped := append([]byte{}, raw...)
	flipped[10] ^= 0x01

	badTag := append([]byte{}, raw[:len(raw)-4]...)
	badTag[1] = 0x0f
	sum := doubleSHA256(badTag)
	badTag = append(badTag, sum[:4]...)

	badVersion := append([]byte{}, raw[:len(raw)-4]...)
	badVersion[0] = 0x05
	sum = doubleSHA256(badVersion)
	badVersion = append(badVersion, sum[:4]...)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not base58", "0OIl"},
		{"too short", base58.Encode([]byte{0, 1, 2})},
		{"checksum", base58.Encode(flipped)},
		{"key tag", base58.Encode(badTag)},
		{"version", base58.Encode(badVersion)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAddress(tt.input); err == nil {
				t.Errorf("ParseAddress(%q) should fail", tt.input)
			}
		})
	}

	if _, err := ParseAddress(base58.Encode(flipped)); !errors.Is(err, ErrBadChecksum) {
		t.Errorf("ParseAddress() error = %v, want ErrBadChecksum", err)
	}
}

func TestAddress_JSON(t *testing.T) {
	a, err := NewAddress(Mainnet, Secp256k1, testKey(33, 2))
	if err != nil {
		t.Fatalf("NewAddress() error: %v", err)
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"`+a.String()+`"` {
		t.Errorf("Marshal() = %s, want quoted base58", data)
	}

	var back Address
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !back.Equal(a) {
		t.Errorf("Unmarshal() = %+v, want %+v", back, a)
	}

	var zero Address
	if err := json.Unmarshal([]byte(`""`), &zero); err != nil {
		t.Fatalf("Unmarshal(empty) error: %v", err)
	}
	if !zero.IsZero() {
		t.Error("empty string should decode to the zero address")
	}
	data, err = json.Marshal(Address{})
	if err != nil {
		t.Fatalf("Marshal(zero) error: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("Marshal(zero) = %s, want \"\"", data)
	}
}

func TestAddress_StringInvalid(t *testing.T) {
	a := Address{Network: "devnet", Algorithm: Ed25519, PublicKey: testKey(32, 1)}
	if a.String() != "" {
		t.Errorf("String() = %q, want empty for invalid network", a.String())
	}
	if _, err := json.Marshal(a); err == nil {
		t.Error("Marshal() should fail for invalid network")
	}
}
