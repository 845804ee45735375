package main

import (
	"os"

	"github.com/oasref-labs/oasref/internal/cli"
	"github.com/oasref-labs/oasref/internal/console"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		console.New(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
