package types

import "fmt"

// Coin denomination.
const (
	Decimals = 12
	Coin     = 1_000_000_000_000 // 10^12 base units per coin
)

// FormatAmount converts raw units to a decimal string with all 12 places.
func FormatAmount(units uint64) string {
	return fmt.Sprintf("%d.%012d", units/Coin, units%Coin)
}
