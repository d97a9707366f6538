// Command mathflow is the CLI for the math query solving pipeline.
package main

import (
	"os"

	"github.com/mathflow-labs/mathflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
