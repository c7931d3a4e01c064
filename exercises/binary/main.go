package main

import (
	"fmt"
	"os"
	"strconv"
)

func toBinary(n int) string {
	if n == 0 {
		return ""
	}
	return toBinary(n/2) + strconv.Itoa(n%2)
}

func main() {
	for _, arg := range os.Args[1:] {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "not a non-negative integer: %s\n", arg)
			os.Exit(1)
		}
		digits := toBinary(n)
		if n == 0 {
			digits = "0"
		}
		fmt.Printf("Binary representation of %d is: %s\n", n, digits)
	}
}
