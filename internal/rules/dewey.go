package rules

import "strings"

// Decimal places kept after the Dewey point.
const (
	BPLDeweyDecimals  = 4
	NYPLDeweyDecimals = 3
)

// ShortenDewey truncates number to maxDecimals decimal digits and drops
// trailing zeros and a dangling point: 947.08420 with 3 decimals is 947.084,
// 500.0 is 500.
func ShortenDewey(number string, maxDecimals int) string {
	whole, decimals, found := strings.Cut(number, ".")
	if !found {
		return whole
	}
	if maxDecimals < 0 {
		maxDecimals = 0
	}
	if len(decimals) > maxDecimals {
		decimals = decimals[:maxDecimals]
	}
	decimals = strings.TrimRight(decimals, "0")
	if decimals == "" {
		return whole
	}
	return whole + "." + decimals
}
