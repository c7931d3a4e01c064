package main

import (
	"fmt"
	"os"
	"strconv"
)

func josephus(n, k int) int {
	if n == 1 {
		return 0
	}
	return (josephus(n-1, k) + k%n) % n
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: josephus <people> <step>")
		os.Exit(2)
	}
	n, errN := strconv.Atoi(os.Args[1])
	k, errK := strconv.Atoi(os.Args[2])
	if errN != nil || errK != nil || n < 1 || k < 1 {
		fmt.Fprintln(os.Stderr, "people and step must be positive integers")
		os.Exit(2)
	}
	fmt.Printf("The last person at index: %d\n", josephus(n, k))
}
