package main

import (
	"context"
	"os"

	"focusclock/internal/cli"
)

// Set via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(context.Background(), info); err != nil {
		os.Exit(1)
	}
}
