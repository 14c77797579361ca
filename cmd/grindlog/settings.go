package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/grindlog"
	"github.com/farcloser/grindlog/internal/config"
)

var errInvalidArgCount = errors.New("expected exactly one argument: path to a valgrind log")

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Usage:   "TOML configuration file (flags override its values)",
		Sources: cli.EnvVars("GRINDLOG_CONFIG"),
	}
}

func inputFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "input-format",
		Usage: "Log encoding: auto (by extension), xml, msgpack",
		Value: "auto",
	}
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Report path, \"-\" for stdout (default: valgrind_report.html)",
		},
		&cli.StringFlag{
			Name:    "title",
			Usage:   "Document title (default: Valgrind_report)",
			Sources: cli.EnvVars("GRINDLOG_TITLE"),
		},
		&cli.StringFlag{
			Name:    "order",
			Usage:   "Ranked list order: ascending, descending (default: ascending)",
			Sources: cli.EnvVars("GRINDLOG_ORDER"),
		},
	}
}

// loadSettings layers defaults, the config file and explicit flags, in that order.
func loadSettings(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if cmd.IsSet("title") {
		cfg.Title = cmd.String("title")
	}

	if cmd.IsSet("order") {
		cfg.Order = cmd.String("order")
	}

	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}

	if _, err = grindlog.ParseOrder(cfg.Order); err != nil {
		return config.Config{}, fmt.Errorf("--order: %w", err)
	}

	return cfg, nil
}

func reportOptions(cfg config.Config) grindlog.Options {
	opts := grindlog.DefaultOptions()
	opts.Title = cfg.Title
	opts.Order = cfg.RankOrder()

	return opts
}
