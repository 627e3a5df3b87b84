package main

import (
	"os"

	"github.com/blueql-db/blueql/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
