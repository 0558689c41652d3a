package main

import (
	"os"

	"github.com/rustyeddy/resample/cmd/resample/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
