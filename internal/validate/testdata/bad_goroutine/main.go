package main

import "fmt"

func worker(out chan<- int) {
	out <- 1
}

func main() {
	ch := make(chan int, 1)
	go worker(ch)
	fmt.Println(<-ch)
}
