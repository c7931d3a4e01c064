package main

import "fmt"

func maxAndPair(values []uint32) uint32 {
	var result uint32
	for bit := 31; bit >= 0; bit-- {
		candidate := result | 1<<uint(bit)
		count := 0
		for _, v := range values {
			if v&candidate == candidate {
				count++
			}
		}
		if count >= 2 {
			result = candidate
		}
	}
	return result
}

func main() {
	values := []uint32{4, 8, 12, 16}
	fmt.Printf("Maximum AND value: %d\n", maxAndPair(values))
}
