package main

import "fmt"

var calls int

func touch() int {
	calls++
	return calls
}

func main() {
	fmt.Println(touch())
}
