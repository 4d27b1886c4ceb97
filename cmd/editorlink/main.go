// Package main is the entry point for the editorlink CLI.
package main

import (
	"os"

	"github.com/runger/editorlink/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
