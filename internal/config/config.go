// Package config reads the optional grindlog TOML file.
//
//	title = "nightly memcheck"
//	order = "descending"
//	output = "memcheck.html"
//
//	[valgrind]
//	path = "/opt/valgrind/bin/valgrind"
//	timeout = "45m"
//	args = ["--leak-check=full", "--show-leak-kinds=all"]
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/farcloser/grindlog/internal/integration/valgrind"
	"github.com/farcloser/grindlog/internal/rank"
	"github.com/farcloser/grindlog/internal/render"
)

var errUnknownKeys = errors.New("unknown configuration keys")

// Config holds every setting the CLI can take from a file.
type Config struct {
	Title    string   `toml:"title"`
	Order    string   `toml:"order"`
	Output   string   `toml:"output"`
	Valgrind Valgrind `toml:"valgrind"`
}

// Valgrind configures the run command.
type Valgrind struct {
	Path    string        `toml:"path"`
	Timeout time.Duration `toml:"timeout"`
	Args    []string      `toml:"args"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Title:  render.DefaultTitle,
		Order:  rank.Ascending.String(),
		Output: "valgrind_report.html",
		Valgrind: Valgrind{
			Timeout: valgrind.DefaultTimeout,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: %v", path, errUnknownKeys, undecoded)
	}

	if _, err = rank.ParseOrder(cfg.Order); err != nil {
		return Config{}, fmt.Errorf("%s: order: %w", path, err)
	}

	return cfg, nil
}

// RankOrder returns the parsed order. Load already validated it.
func (c Config) RankOrder() rank.Order {
	order, err := rank.ParseOrder(c.Order)
	if err != nil {
		return rank.Ascending
	}

	return order
}
