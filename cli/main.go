// ABOUTME: Entry point for pricing-wizard CLI
// ABOUTME: Command-line tool for quoting school programs and delivering agreements

package main

import (
	"fmt"
	"os"

	"github.com/beyondskool/pricing-wizard/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
