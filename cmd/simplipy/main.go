// Command simplipy runs the small-step Python-subset interpreter from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/simplipy-lang/simplipy-go/cmd/simplipy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
