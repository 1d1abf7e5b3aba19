// Command gradval exercises the scalar autodiff engine from the shell.
//
// Usage:
//
//	gradval version
//	gradval check [--config check.yaml] [--ops mul,div] [--samples 9] [--workers 4]
//	gradval trace --x 1.5 --y 2
package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
