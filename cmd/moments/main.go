// Command moments manages moments from the terminal against the configured
// storage backend.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newCLIApp(os.Stdout, os.Stderr)).Execute(); err != nil {
		os.Exit(1)
	}
}
