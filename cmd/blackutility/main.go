package main

import (
	"os"

	"github.com/0xb0rn3/blackutility/internal/interface/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
