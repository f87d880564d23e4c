// Command exx lexes, parses and checks exx source files.
package main

import (
	"os"

	"github.com/hassan/exx/cmd/exx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
