// Command swissdump builds a small table from its arguments and prints its
// internal layout, for poking at control-byte and group behavior from the
// command line instead of a debugger.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/thepudds/swisstable"
)

func main() {
	capacity := flag.Int("capacity", 0, "initial capacity hint (0 lets the table pick)")
	flag.Parse()

	var opts []swisstable.Option[string]
	if *capacity > 0 {
		opts = append(opts, swisstable.WithCapacity[string](*capacity))
	}
	m := swisstable.New[string, int](opts...)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"alpha", "bravo", "charlie", "delta"}
	}
	for i, a := range args {
		m.Set(a, i)
	}
	for _, a := range args[:len(args)/2] {
		m.Delete(a)
	}

	fmt.Fprintf(w, "len=%d\n", m.Len())
	fmt.Fprint(w, m.Dump())
}
