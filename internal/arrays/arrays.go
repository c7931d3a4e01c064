// Package arrays walks through fixed-size arrays and slices.
package arrays

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrOutOfRange is returned by At for an index outside the slice.
var ErrOutOfRange = errors.New("index out of range")

// Tally counts walkthrough visits. The zero value starts at zero; share one
// Tally between calls for the count to persist.
type Tally struct {
	visits int
}

// Visit records one more visit and returns the new count.
func (t *Tally) Visit() int {
	t.visits++
	return t.visits
}

// Visits returns the number of recorded visits.
func (t *Tally) Visits() int {
	return t.visits
}

// At returns arr[i] or ErrOutOfRange.
func At(arr []int, i int) (int, error) {
	if i < 0 || i >= len(arr) {
		return 0, fmt.Errorf("at %d with length %d: %w", i, len(arr), ErrOutOfRange)
	}
	return arr[i], nil
}

// Walkthrough writes the array and slice sections to w. tally may be nil,
// in which case the visit section is skipped.
func Walkthrough(w io.Writer, tally *Tally) error {
	p := &printer{w: w}
	fixedArraySection(p)
	sliceSection(p)
	if tally != nil {
		p.section("PERSISTENT STATE")
		p.linef("Walkthrough visit: %d", tally.Visit())
	}
	return p.err
}

func fixedArraySection(p *printer) {
	p.section("FIXED-SIZE ARRAYS")

	var zeroed [5]int
	lucky := [5]int{10, 20, 30, 40, 50}
	partial := [5]int{1, 2}
	autoSized := [...]int{100, 200, 300}

	p.linef("Zero-valued array: %v", zeroed)
	p.linef("Partial array index 0: %d", partial[0])
	p.linef("Partial array index 4: %d", partial[4])
	p.linef("Implicit length: %d", len(autoSized))

	lucky[2] = 999
	p.linef("Element at index 2 is now: %d", lucky[2])
	p.linef("Length: %d", len(lucky))
	p.linef("Loop: %s", joinInts(lucky[:]))

	copied := lucky
	copied[0] = -1
	p.linef("Assignment copies: original[0]=%d copy[0]=%d", lucky[0], copied[0])

	matrix := [2][3]int{
		{1, 2, 3},
		{4, 5, 6},
	}
	p.linef("Matrix[1][2] = %d", matrix[1][2])
	for _, row := range matrix {
		var sb strings.Builder
		for _, v := range row {
			fmt.Fprintf(&sb, "[%d]", v)
		}
		p.line(sb.String())
	}

	if _, err := At(lucky[:], 10); err != nil {
		p.linef("Error caught: %v", err)
	}
}

func sliceSection(p *printer) {
	p.section("SLICES")

	var numbers []int
	numbers = append(numbers, 10, 20, 30)
	p.linef("Initial length: %d", len(numbers))
	p.linef("First element: %d", numbers[0])
	second, _ := At(numbers, 1)
	p.linef("Second element: %d", second)

	numbers = numbers[:len(numbers)-1]
	p.linef("Length after pop: %d", len(numbers))

	numbers = append([]int{99}, numbers...)
	p.linef("Current slice: %s", joinInts(numbers))
	p.linef("Capacity covers length: %t", cap(numbers) >= len(numbers))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// printer keeps the first write error so sections can print unconditionally.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) section(title string) {
	p.linef("=== %s ===", title)
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}
