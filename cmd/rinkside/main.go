package main

import (
	"os"

	"github.com/rinkside/rinkside/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
