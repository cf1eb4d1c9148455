package main

import (
	"os"

	"github.com/tropedb/tropedeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
