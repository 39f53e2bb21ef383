package big

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	base10 = 10
)

// BigIntFromString converts a string to a *big.Int.
func BigIntFromString(s string) (*big.Int, error) {
	// allow common thousands separators (commas, underscores and spaces)
	sanitized := strings.ReplaceAll(s, ",", "")
	sanitized = strings.ReplaceAll(sanitized, "_", "")
	sanitized = strings.ReplaceAll(sanitized, " ", "")

	bigInt, isValid := new(big.Int).SetString(sanitized, base10)
	if !isValid {
		return nil, fmt.Errorf("invalid integer string: %s", s)
	}

	return bigInt, nil
}

// FormatBaseUnits renders an amount expressed in a token's base units as a
// decimal string with the given number of fractional places, dividing by
// 10^decimals. A nil amount renders as zero.
func FormatBaseUnits(amount *big.Int, decimals int, places int) string {
	if amount == nil {
		amount = big.NewInt(0)
	}

	value := new(big.Float).SetInt(amount)
	denom := new(big.Float).SetFloat64(1)
	for i := 0; i < decimals; i++ {
		denom.Mul(denom, big.NewFloat(base10))
	}
	value.Quo(value, denom)

	return value.Text('f', places)
}
