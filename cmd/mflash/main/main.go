package main

import (
	"os"

	"github.com/arthur-debert/mflash/cmd/mflash"
	"github.com/arthur-debert/mflash/pkg/ui"
)

func main() {
	rootCmd := mflash.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}
