package main

import "fmt"

// counter replaces a function-level static: whoever owns it decides how long
// the count lives.
type counter struct {
	calls [3]int
}

func (c *counter) touch(slot int) int {
	c.calls[slot]++
	return c.calls[slot]
}

// printArray receives its own copy of arr.
func printArray(arr [5]int) {
	fmt.Println("Function output:", arr)
}

func main() {
	var zeroed [5]int
	lucky := [5]int{10, 20, 30, 40, 50}
	partial := [5]int{1, 2}
	autoSized := [...]int{100, 200, 300}

	fmt.Println("Zero-valued:", zeroed)
	fmt.Println("Partial index 4:", partial[4])
	fmt.Println("Implicit length:", len(autoSized))

	lucky[2] = 999
	printArray(lucky)

	copied := lucky
	copied[0] = -1
	fmt.Println("Original after copy edit:", lucky[0])

	matrix := [2][3]int{{1, 2, 3}, {4, 5, 6}}
	fmt.Println("Matrix[1][2] =", matrix[1][2])

	var c counter
	for i := 0; i < 3; i++ {
		fmt.Println("Calls to slot 0:", c.touch(0))
	}
}
