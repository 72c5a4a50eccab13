package main

import (
	"errors"
	"fmt"
	"os"
)

// errReported marks errors the command already rendered itself, so
// main does not print them a second time.
var errReported = errors.New("error already reported")

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
