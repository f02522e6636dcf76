// Command screening-cli runs the screening pipeline and the tool classifier
// from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "screening-cli: %v\n", err)
		os.Exit(1)
	}
}
