package main

import "fmt"

func main() {
	var numbers []int
	numbers = append(numbers, 10, 20, 30)
	fmt.Println("Initial length:", len(numbers))
	fmt.Println("First element:", numbers[0])

	numbers = numbers[:len(numbers)-1]
	fmt.Println("Length after pop:", len(numbers))

	numbers = append([]int{99}, numbers...)
	fmt.Println("Current slice:", numbers)

	grown := make([]int, 0, 2)
	for i := 0; i < 5; i++ {
		grown = append(grown, i)
	}
	fmt.Println("Grown length:", len(grown), "fits:", cap(grown) >= len(grown))
}
