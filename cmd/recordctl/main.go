// Command recordctl drives the content API from the terminal. It runs the
// same editing state machine the interactive editor uses, so a scripted save
// goes through the identical attach, encode and submit path.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
