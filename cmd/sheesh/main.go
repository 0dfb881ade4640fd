package main

import (
	"os"

	"github.com/metaphox/sheesh/cmd/sheesh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
