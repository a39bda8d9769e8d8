package main

import (
	"fmt"

	"github.com/aglyzov/go-gentrie/strmap"
)

func main() {
	m := strmap.New()
	m = m.Set("c", 1)
	m = m.Set("a1", 3)
	m = m.Set("a2", 4)
	m = m.Set("a22", 6)
	m = m.Set("bb", 7)

	m.Iter(func(key string, val interface{}) bool {
		fmt.Printf("%s -> %v\n", key, val)
		return true
	})

	println("------")

	// older versions survive updates
	old := m
	m = m.Del("a2").Set("bb", 70)
	fmt.Printf("old has a2: %v\n", len(old.Keys()) == 5)
	fmt.Printf("old == new: %v\n", old.Equal(m))

	sum := strmap.Union(func(_ string, a, b interface{}) interface{} {
		return a.(int) + b.(int)
	}, old, m)
	for _, item := range sum.Items() {
		fmt.Printf("%s -> %v\n", item.Key, item.Val)
	}
}
