package main

import (
	"log"

	"github.com/kennyfrc/llmctx/internal/cli"
)

func main() {
	// All diagnostics go to stderr so stdout stays clean for the bundle.
	log.SetFlags(0)
	cli.Execute()
}
