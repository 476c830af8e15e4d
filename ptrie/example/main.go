package main

import (
	"fmt"
	"os"

	"github.com/aglyzov/go-ptrie/ptrie"
)

func main() {
	s := ptrie.MustNewStable(ptrie.WithSplitBound(2))

	idx := map[string]ptrie.Index{}

	for _, key := range []string{"ab", "ac", "ad", "xyz", "", "a22", "bb"} {
		idx[key], _ = s.Insert([]byte(key))
	}

	s.Dump(os.Stdout)

	println("------")

	for _, key := range []string{"ab", "xyz", "a22"} {
		fmt.Printf("%-4s -> idx:%d -> %q\n", key, idx[key], s.Unpack(idx[key]))
	}

	println("------")

	s.Erase([]byte("ac"))
	s.Erase([]byte("ad"))

	visitor := func(i ptrie.Index, key []byte) bool {
		fmt.Printf("%d %q\n", i, key)
		return true
	}
	s.IterIndex(visitor)

	fmt.Println(s.Stats())
}
