package main

import (
	"os"

	"github.com/tarotdaily/tarotdaily/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
