package main

import (
	"os"

	"github.com/jt05610/magnet/cmd/magnet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
