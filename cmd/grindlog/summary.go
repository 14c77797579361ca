package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/grindlog"
)

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "Print the most frequent kinds, files, objects, functions and directories of a log",
		ArgsUsage: "<log.xml | snapshot.mp>",
		Flags: []cli.Flag{
			inputFormatFlag(),
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Entries listed per dimension (0 lists everything)",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			format, err := grindlog.ParseInputFormat(cmd.String("input-format"))
			if err != nil {
				return fmt.Errorf("--input-format: %w", err)
			}

			logPath := cmd.Args().First()

			coll, err := grindlog.Load(logPath, format)
			if err != nil {
				return fmt.Errorf("%q: %w", logPath, err)
			}

			return outputSummary(logPath, coll, max(cmd.Int("top"), 0), cmd.String("format"))
		},
	}
}
