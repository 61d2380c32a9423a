// Package main is the entry point for the strengths CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/cmd"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/calibstore"
)

func main() {
	cmd.SetStoreManager(calibstore.Manager)

	err := cmd.Execute()
	calibstore.CloseStore()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
