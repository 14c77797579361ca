package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/grindlog"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a valgrind log as a cross-linked HTML report",
		ArgsUsage: "<log.xml | snapshot.mp>",
		Flags:     append(reportFlags(), inputFormatFlag()),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			format, err := grindlog.ParseInputFormat(cmd.String("input-format"))
			if err != nil {
				return fmt.Errorf("--input-format: %w", err)
			}

			return runRender(cmd.Args().First(), format, cfg.Output, reportOptions(cfg))
		},
	}
}

func runRender(logPath string, format grindlog.InputFormat, outputPath string, opts grindlog.Options) error {
	startTime := time.Now()

	coll, err := grindlog.Load(logPath, format)
	if err != nil {
		return fmt.Errorf("%q: %w", logPath, err)
	}

	if err = grindlog.RenderFile(outputPath, coll, opts); err != nil {
		return err
	}

	if outputPath != grindlog.StdoutPath {
		fmt.Fprintf(os.Stderr, "Report written to %s: %d errors in %s\n",
			outputPath, coll.Len(), time.Since(startTime).Truncate(time.Millisecond))
	}

	return nil
}
