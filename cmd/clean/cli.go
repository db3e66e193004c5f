package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/civicdata/clean"
	"github.com/civicdata/clean/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Ledger clean.LedgerService

	// Agencies is the built-in registry of supported agencies.
	Agencies map[string]clean.Agency

	// NewScraper builds a fully wired scraper for one run. The returned
	// close function releases the underlying HTTP client.
	NewScraper func(agency clean.Agency, throttleSeconds int, continueOnError bool) (*scrape.Scraper, func() error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ScrapeMeta ScrapeMetaCmd `cmd:"" name:"scrape-meta" help:"Scrape file metadata for an agency and write its JSON index"`
	Scrape     ScrapeCmd     `cmd:"" help:"Download file assets for an agency"`
	Downloads  DownloadsCmd  `cmd:"" help:"List downloads recorded in the ledger"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// ScrapeMetaCmd is the "scrape-meta" subcommand.
type ScrapeMetaCmd struct {
	Agency   string `short:"a" default:"ca_oakland_pd" help:"Agency slug"`
	Throttle int    `short:"t" default:"0" help:"Seconds to wait between requests"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Agency          string `short:"a" default:"ca_oakland_pd" help:"Agency slug"`
	Throttle        int    `short:"t" default:"0" help:"Seconds to wait between requests"`
	Filter          string `short:"f" help:"Only download links whose URL or name contains this substring"`
	ContinueOnError bool   `help:"Keep scraping remaining cases when one case fails"`
}

// DownloadsCmd is the "downloads" subcommand.
type DownloadsCmd struct {
	Agency string `short:"a" help:"Restrict to one agency slug"`
	Limit  int    `default:"50" help:"Maximum number of rows to show"`
}
