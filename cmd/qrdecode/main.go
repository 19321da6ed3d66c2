// Command qrdecode is a thin CLI wrapper around the qrdecode library: load
// an image, hand it to the pipeline, print results. All the actual decode
// logic lives in the library packages; this package owns only flag
// parsing, logging setup, and output formatting.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
