package main

import "fmt"

var calls [3]int

var seen = map[string]int{}

var st struct {
	n int
}

func main() {
	calls[0]++
	seen["x"]++
	st.n++
	fmt.Println(calls[0], seen["x"], st.n)
}
