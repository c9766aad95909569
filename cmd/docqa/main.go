package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/docqa/internal/cli"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, BuildDate: buildDate})
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
