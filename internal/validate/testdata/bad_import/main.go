package main

import (
	"fmt"

	"gokata/internal/bits"
)

func main() {
	fmt.Println(bits.MaxPairAnd([]uint32{4, 8, 12, 16}))
}
