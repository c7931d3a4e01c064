package recursion

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestDecimalToBinary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "10"},
		{10, "1010"},
		{255, "11111111"},
		{-6, "-110"},
	}
	for _, tc := range tests {
		if got := DecimalToBinary(tc.in); got != tc.want {
			t.Fatalf("DecimalToBinary(%d)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecimalToBinaryMatchesStrconv(t *testing.T) {
	for _, n := range []int{3, 17, 1 << 20, 123456789, math.MaxInt64, math.MinInt64} {
		want := strconv.FormatInt(int64(n), 2)
		if got := DecimalToBinary(n); got != want {
			t.Fatalf("DecimalToBinary(%d)=%q, want %q", n, got, want)
		}
	}
}

func TestJosephus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n, k int
		want int
	}{
		{1, 3, 0},
		{5, 2, 2},
		{7, 3, 3},
		{41, 3, 30},
		{6, 1, 5},
		{3, math.MaxInt, 2},
		{2, math.MaxInt, 1},
	}
	for _, tc := range tests {
		got, err := Josephus(tc.n, tc.k)
		if err != nil {
			t.Fatalf("Josephus(%d, %d) unexpected error: %v", tc.n, tc.k, err)
		}
		if got != tc.want {
			t.Fatalf("Josephus(%d, %d)=%d, want %d", tc.n, tc.k, got, tc.want)
		}
		rec, err := JosephusRecursive(tc.n, tc.k)
		if err != nil {
			t.Fatalf("JosephusRecursive(%d, %d) unexpected error: %v", tc.n, tc.k, err)
		}
		if rec != tc.want {
			t.Fatalf("JosephusRecursive(%d, %d)=%d, want %d", tc.n, tc.k, rec, tc.want)
		}
	}
}

func TestJosephusLargeStepStaysInCircle(t *testing.T) {
	for n := 1; n <= 64; n++ {
		for _, k := range []int{math.MaxInt, math.MaxInt - 1, math.MaxInt / 3} {
			got, err := Josephus(n, k)
			if err != nil {
				t.Fatalf("Josephus(%d, %d): %v", n, k, err)
			}
			if got < 0 || got >= n {
				t.Fatalf("Josephus(%d, %d)=%d outside [0, %d)", n, k, got, n)
			}
			rec, err := JosephusRecursive(n, k)
			if err != nil {
				t.Fatalf("JosephusRecursive(%d, %d): %v", n, k, err)
			}
			if rec != got {
				t.Fatalf("JosephusRecursive(%d, %d)=%d, Josephus=%d", n, k, rec, got)
			}
		}
	}
}

func TestJosephusLargeCircle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large circle in short mode")
	}
	// Far deeper than any goroutine stack would allow for the recursive form.
	const n = 10_000_000
	got, err := Josephus(n, 2)
	if err != nil {
		t.Fatalf("Josephus(%d, 2): %v", n, err)
	}
	// For k=2 the survivor is 2*(n - 2^floor(log2 n)), zero-based.
	if want := 2 * (n - 1<<23); got != want {
		t.Fatalf("Josephus(%d, 2)=%d, want %d", n, got, want)
	}
	if _, err := JosephusRecursive(n, 2); !errors.Is(err, ErrInvalidCircle) {
		t.Fatalf("JosephusRecursive(%d, 2) expected ErrInvalidCircle, got %v", n, err)
	}
}

func TestJosephusMatchesSimulation(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for k := 1; k <= 7; k++ {
			got, err := Josephus(n, k)
			if err != nil {
				t.Fatalf("Josephus(%d, %d): %v", n, k, err)
			}
			want := simulateCircle(n, k)
			if got != want {
				t.Fatalf("Josephus(%d, %d)=%d, simulation %d", n, k, got, want)
			}
			if rec, _ := JosephusRecursive(n, k); rec != want {
				t.Fatalf("JosephusRecursive(%d, %d)=%d, simulation %d", n, k, rec, want)
			}
		}
	}
}

func TestJosephusRejectsInvalidCircle(t *testing.T) {
	for _, tc := range [][2]int{{0, 2}, {-1, 2}, {3, 0}} {
		if _, err := Josephus(tc[0], tc[1]); !errors.Is(err, ErrInvalidCircle) {
			t.Fatalf("Josephus(%d, %d) expected ErrInvalidCircle, got %v", tc[0], tc[1], err)
		}
		if _, err := JosephusRecursive(tc[0], tc[1]); !errors.Is(err, ErrInvalidCircle) {
			t.Fatalf("JosephusRecursive(%d, %d) expected ErrInvalidCircle, got %v", tc[0], tc[1], err)
		}
	}
	if _, err := JosephusRecursive(MaxRecursionDepth+1, 2); !errors.Is(err, ErrInvalidCircle) {
		t.Fatalf("JosephusRecursive above depth limit expected ErrInvalidCircle, got %v", err)
	}
}

func simulateCircle(n, k int) int {
	people := make([]int, n)
	for i := range people {
		people[i] = i
	}
	idx := 0
	for len(people) > 1 {
		idx = (idx + k - 1) % len(people)
		people = append(people[:idx], people[idx+1:]...)
	}
	return people[0]
}
