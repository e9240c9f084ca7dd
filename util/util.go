package util

import (
	"fmt"
	"math/big"
	"strings"
)

// BigToUint64 converts a ledger-native uint256 to a plain uint64. A nil,
// negative or overflowing value is a decode error, not a zero.
func BigToUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("nil numeric value")
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("numeric value %s out of uint64 range", v.String())
	}
	return v.Uint64(), nil
}

// BigsToUint64s converts a slice of ledger-native numbers, failing on the
// first bad element.
func BigsToUint64s(vs []*big.Int) ([]uint64, error) {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		n, err := BigToUint64(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// FilterBlank drops options that are empty or whitespace-only, preserving
// the order of the survivors.
func FilterBlank(options []string) []string {
	filtered := make([]string, 0, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) != "" {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}
