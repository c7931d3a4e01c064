// Package bits implements the maximum bitwise-AND pair search.
package bits

import (
	"errors"
	"fmt"
)

// Width is the number of bit positions examined by MaxPairAnd.
const Width = 32

// ErrTooFewValues is returned by MaxPairAndChecked when no pair exists.
var ErrTooFewValues = errors.New("at least two values are required")

// MaxPairAnd returns the largest a&b over all pairs of distinct positions in
// values. The result is built greedily from the most significant bit down: a
// bit is kept when at least two values contain every bit chosen so far plus
// the candidate bit.
//
// With fewer than two values no bit can qualify and the result is 0. That
// value is not a real answer; use MaxPairAndChecked to reject such input.
func MaxPairAnd(values []uint32) uint32 {
	var result uint32
	for bit := Width - 1; bit >= 0; bit-- {
		candidate := result | 1<<uint(bit)
		if countContaining(values, candidate) >= 2 {
			result = candidate
		}
	}
	return result
}

// MaxPairAndChecked is MaxPairAnd for callers that treat a missing pair as
// an error.
func MaxPairAndChecked(values []uint32) (uint32, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("max pair and over %d value(s): %w", len(values), ErrTooFewValues)
	}
	return MaxPairAnd(values), nil
}

// PairwiseMaxAnd computes the same answer as MaxPairAnd by checking every
// pair. It is quadratic and exists as a reference.
func PairwiseMaxAnd(values []uint32) uint32 {
	var best uint32
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if v := values[i] & values[j]; v > best {
				best = v
			}
		}
	}
	return best
}

// FromInt32 reinterprets signed values by their two's-complement bits.
func FromInt32(values []int32) []uint32 {
	out := make([]uint32, len(values))
	for i, v := range values {
		out[i] = uint32(v)
	}
	return out
}

// countContaining counts values whose bits are a superset of mask. It stops
// at two since the caller only needs to know whether a pair exists.
func countContaining(values []uint32, mask uint32) int {
	count := 0
	for _, v := range values {
		if v&mask == mask {
			count++
			if count == 2 {
				break
			}
		}
	}
	return count
}
