// Package main provides the revad CLI.
package main

import (
	"os"

	"github.com/revad-ml/revad/internal/cmd"
)

func main() {
	if err := cmd.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
