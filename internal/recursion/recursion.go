// Package recursion holds the recursive exercises: decimal to binary
// conversion and the Josephus survivor.
package recursion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCircle is returned by Josephus for a circle that cannot be
// eliminated.
var ErrInvalidCircle = errors.New("josephus requires n >= 1 and k >= 1")

// DecimalToBinary renders n in base 2. Digits are produced by recursing on
// n/2 first and appending the remainder on the way back out.
func DecimalToBinary(n int) string {
	if n == 0 {
		return "0"
	}
	var sb strings.Builder
	if n < 0 {
		sb.WriteByte('-')
		// uint avoids overflow on the most negative int.
		writeBinary(&sb, uint(-(n+1))+1)
		return sb.String()
	}
	writeBinary(&sb, uint(n))
	return sb.String()
}

func writeBinary(sb *strings.Builder, n uint) {
	if n == 0 {
		return
	}
	writeBinary(sb, n/2)
	sb.WriteByte(byte('0' + n%2))
}

// MaxRecursionDepth bounds the circle size accepted by JosephusRecursive,
// which uses one stack frame per person.
const MaxRecursionDepth = 1 << 16

// Josephus returns the zero-based position of the survivor when every k-th
// person is removed from a circle of n. The recurrence is evaluated bottom
// up, so any positive n is accepted.
func Josephus(n, k int) (int, error) {
	if n < 1 || k < 1 {
		return 0, fmt.Errorf("josephus(n=%d, k=%d): %w", n, k, ErrInvalidCircle)
	}
	survivor := 0
	// size stays below n, so size+1 cannot overflow even for n == MaxInt.
	for size := 1; size < n; size++ {
		next := size + 1
		survivor = (survivor + k%next) % next
	}
	return survivor, nil
}

// JosephusRecursive computes the same survivor as Josephus by recursing on
// the circle with one person fewer. n above MaxRecursionDepth is rejected.
func JosephusRecursive(n, k int) (int, error) {
	if n < 1 || k < 1 || n > MaxRecursionDepth {
		return 0, fmt.Errorf("josephus(n=%d, k=%d): %w", n, k, ErrInvalidCircle)
	}
	return josephus(n, k), nil
}

// josephus reduces k before adding so the sum stays below 2n.
func josephus(n, k int) int {
	if n == 1 {
		return 0
	}
	return (josephus(n-1, k) + k%n) % n
}
