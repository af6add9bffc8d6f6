package main

import (
	"context"
	"os"

	"github.com/patchkit/patchkit/internal/cli"
)

// main bootstraps the patchkit command.
func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
