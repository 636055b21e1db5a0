package main

import (
	"os"

	"github.com/ariel-frischer/changesets/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
