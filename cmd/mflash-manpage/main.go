package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/mflash/cmd/mflash"
	"github.com/arthur-debert/mflash/internal/version"
)

func main() {
	rootCmd := mflash.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MFLASH",
		Section: "1",
		Source:  "mflash " + version.Version,
		Manual:  "mflash manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
