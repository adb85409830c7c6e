// decode_phrase.go prints the entropy and ed25519 address for a mobile
// wallet recovery phrase.
// Usage: go run scripts/decode_phrase.go [--testnet] word1 ... word12
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
	"github.com/Klingon-tech/klingnet-wallet/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

func main() {
	args := os.Args[1:]
	network := types.Mainnet
	if len(args) > 0 && args[0] == "--testnet" {
		network = types.Testnet
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: decode_phrase [--testnet] <12 words>")
		os.Exit(1)
	}

	entropy, err := mnemonic.Decode(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	kp, err := wallet.Derive(entropy, wallet.DeriveOptions{KeyType: wallet.KeyEd25519})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	addr, err := kp.Address(network)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("entropy=%s\n", entropy.Hex())
	fmt.Printf("entropy_b58=%s\n", entropy.Base58())
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(kp.PublicKey()))
	fmt.Printf("address=%s\n", addr.String())
}
