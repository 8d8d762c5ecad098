package main

import (
	"os"

	"github.com/openkraft/devkit/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.ExecuteSubcommand("slice"); err != nil {
		os.Exit(1)
	}
}
