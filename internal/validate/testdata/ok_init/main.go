package main

import "fmt"

var table = build()

var ready bool

func build() []int {
	return []int{1, 2, 3}
}

func init() {
	ready = true
}

func main() {
	fmt.Println(len(table), ready)
}
