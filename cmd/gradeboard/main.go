package main

import (
	"os"

	"github.com/gradekit/gradeboard/cmd/gradeboard/commands"
)

// main is the entry point for the gradeboard CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
