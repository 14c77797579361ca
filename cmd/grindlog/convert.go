package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/grindlog"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Parse a memcheck XML log once and store it as a msgpack snapshot",
		ArgsUsage: "<log.xml>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Snapshot path (default: the log path with a .mp extension)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			logPath := cmd.Args().First()

			outputPath := cmd.String("output")
			if outputPath == "" {
				outputPath = strings.TrimSuffix(logPath, filepath.Ext(logPath)) + ".mp"
			}

			coll, err := grindlog.Load(logPath, grindlog.InputXML)
			if err != nil {
				return fmt.Errorf("%q: %w", logPath, err)
			}

			if err = grindlog.WriteSnapshot(outputPath, coll); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Snapshot written to %s (%d errors)\n", outputPath, coll.Len())

			return nil
		},
	}
}
