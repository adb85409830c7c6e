package types

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		units uint64
		want  string
	}{
		{0, "0.000000000000"},
		{1, "0.000000000001"},
		{Coin, "1.000000000000"},
		{12*Coin + 345_000_000_000, "12.345000000000"},
		{^uint64(0), "18446744.073709551615"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.units); got != tt.want {
			t.Errorf("FormatAmount(%d) = %s, want %s", tt.units, got, tt.want)
		}
	}
}
