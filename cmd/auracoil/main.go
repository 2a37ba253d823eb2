package main

import (
	"os"

	"github.com/auracoil/auracoil/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
