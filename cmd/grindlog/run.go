package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/grindlog"
	"github.com/farcloser/grindlog/internal/integration/valgrind"
)

var errRunArgs = errors.New("expected a program to run: grindlog run [flags] -- <program> [args...]")

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a program under valgrind memcheck and render the resulting log",
		ArgsUsage: "-- <program> [args...]",
		Flags: append(reportFlags(),
			&cli.StringFlag{
				Name:  "valgrind",
				Usage: "valgrind executable (default: looked up in PATH)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Abort the run after this long (default: 30m)",
			},
			&cli.StringFlag{
				Name:  "keep-log",
				Usage: "Also keep the memcheck XML log at this path",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return errRunArgs
			}

			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			opts := valgrind.RunOptions{
				Binary:  cfg.Valgrind.Path,
				Timeout: cfg.Valgrind.Timeout,
				Args:    cfg.Valgrind.Args,
				Stdout:  os.Stderr,
			}

			if cmd.IsSet("valgrind") {
				opts.Binary = cmd.String("valgrind")
			}

			if cmd.IsSet("timeout") {
				opts.Timeout = cmd.Duration("timeout")
			}

			xmlPath := cmd.String("keep-log")
			if xmlPath == "" {
				tmpDir, err := os.MkdirTemp("", "grindlog-")
				if err != nil {
					return fmt.Errorf("creating temporary directory: %w", err)
				}
				defer os.RemoveAll(tmpDir)

				xmlPath = filepath.Join(tmpDir, "memcheck.xml")
			}

			args := cmd.Args().Slice()

			fmt.Fprintf(os.Stderr, "Running %s under valgrind\n", args[0])

			if err = valgrind.Run(ctx, xmlPath, args[0], args[1:], opts); err != nil {
				return fmt.Errorf("running %q: %w", args[0], err)
			}

			return runRender(xmlPath, grindlog.InputXML, cfg.Output, reportOptions(cfg))
		},
	}
}
