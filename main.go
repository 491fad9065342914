package main

import (
	"os"

	"github.com/abhisek/credform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
