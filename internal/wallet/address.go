// Package wallet holds the wallet address value type shared by the scanner
// components. An Address is always validated and normalized at construction;
// downstream code can treat any non-zero Address as well-formed.
package wallet

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a validated, lowercase-normalized BSC wallet address,
// including the 0x prefix.
type Address string

// ValidationError indicates that an input could not be parsed as a wallet
// address. No network call is made for a request that fails validation.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid wallet address: '%s'", e.Input)
}

// ParseAddress validates the given string as a 20-byte hex address and
// returns it normalized to lowercase. A missing 0x prefix is tolerated.
func ParseAddress(input string) (Address, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return "", &ValidationError{Input: input}
	}

	if !strings.HasPrefix(candidate, "0x") && !strings.HasPrefix(candidate, "0X") {
		candidate = "0x" + candidate
	}

	if !common.IsHexAddress(candidate) {
		return "", &ValidationError{Input: input}
	}

	return Address(strings.ToLower(candidate)), nil
}

// String returns the address as its lowercase hex form.
func (a Address) String() string {
	return string(a)
}

// Equal compares two addresses case-insensitively; raw API records are not
// guaranteed to use a consistent casing.
func (a Address) Equal(other string) bool {
	return strings.EqualFold(string(a), other)
}
