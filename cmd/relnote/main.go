package main

import (
	"os"

	"github.com/relnote-dev/relnote/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
