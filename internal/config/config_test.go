package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/grindlog/internal/config"
	"github.com/farcloser/grindlog/internal/rank"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "grindlog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "Valgrind_report", cfg.Title)
	assert.Equal(t, rank.Ascending, cfg.RankOrder())
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, `
title = "nightly memcheck"
order = "desc"

[valgrind]
timeout = "45m"
args = ["--leak-check=full", "--show-leak-kinds=all"]
`))
	require.NoError(t, err)

	assert.Equal(t, "nightly memcheck", cfg.Title)
	assert.Equal(t, rank.Descending, cfg.RankOrder())
	assert.Equal(t, "valgrind_report.html", cfg.Output)
	assert.Equal(t, 45*time.Minute, cfg.Valgrind.Timeout)
	assert.Equal(t, []string{"--leak-check=full", "--show-leak-kinds=all"}, cfg.Valgrind.Args)
	assert.Empty(t, cfg.Valgrind.Path)
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"unknown key":  "colour = \"red\"\n",
		"bad order":    "order = \"sideways\"\n",
		"invalid toml": "title = \n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeConfig(t, content))
			require.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
