// Command overlay renders overlay output in a terminal: pretty-printed
// values, log panel lines and the effective debug config.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
