package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/civicdata/clean/cmd/clean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"scrape-meta", "scrape", "downloads"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ScrapeFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"scrape", "--throttle", "3", "--filter", ".pdf", "--continue-on-error"})
	require.NoError(t, err)

	assert.Equal(t, "ca_oakland_pd", cli.Scrape.Agency)
	assert.Equal(t, 3, cli.Scrape.Throttle)
	assert.Equal(t, ".pdf", cli.Scrape.Filter)
	assert.True(t, cli.Scrape.ContinueOnError)
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	dir := t.TempDir()
	m.DataDir = filepath.Join(dir, "data")
	m.CacheDir = filepath.Join(dir, "cache")
	m.DBPath = filepath.Join(dir, "clean.db")
	return m
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "scrape-meta")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_DownloadsEmptyLedger(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"downloads"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No downloads recorded")
}

func TestMain_Run_UnknownAgency(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"scrape-meta", "--agency", "zz_nowhere_pd"}, &bytes.Buffer{}, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "unknown agency")
}
