package main

import (
	"os"

	"rocketsim/engine/library"
)

func main() {
	if err := RootCommand().Execute(); err != nil {
		library.LogCLI(err.Error(), 1)
		os.Exit(1)
	}
}
