package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/grindlog/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Cross-referenced HTML reports for valgrind memcheck logs",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			renderCommand(),
			summaryCommand(),
			convertCommand(),
			runCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
