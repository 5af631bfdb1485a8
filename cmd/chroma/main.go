// Chroma - deterministic colour palette analysis
//
// Chroma extracts the dominant colours of an image, classifies their
// harmony and suggests a contrasting text colour.
package main

import (
	"os"

	"github.com/chromavant/chroma/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
