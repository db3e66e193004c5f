package main

import (
	"fmt"

	"github.com/civicdata/clean"
)

// Run executes the scrape-meta command.
func (c *ScrapeMetaCmd) Run(deps *Dependencies) error {
	agency, err := agencyBySlug(deps.Agencies, c.Agency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clean.ErrorMessage(err))
		return err
	}

	scraper, closeFn := deps.NewScraper(agency, c.Throttle, false)
	defer closeFn()

	indexPath, err := scraper.ScrapeMeta(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clean.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, indexPath)
	return nil
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	agency, err := agencyBySlug(deps.Agencies, c.Agency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clean.ErrorMessage(err))
		return err
	}

	scraper, closeFn := deps.NewScraper(agency, c.Throttle, c.ContinueOnError)
	defer closeFn()

	paths, err := scraper.Scrape(deps.Ctx, c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clean.ErrorMessage(err))
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(deps.Stdout, p)
	}
	fmt.Fprintf(deps.Stdout, "%d assets downloaded for %s\n", len(paths), agency.Slug)
	return nil
}

// Run executes the downloads command.
func (c *DownloadsCmd) Run(deps *Dependencies) error {
	filter := clean.DownloadFilter{Limit: c.Limit}
	if c.Agency != "" {
		filter.Agency = &c.Agency
	}

	downloads, err := deps.Ledger.FindDownloads(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clean.ErrorMessage(err))
		return err
	}

	if len(downloads) == 0 {
		fmt.Fprintln(deps.Stdout, "No downloads recorded. Use 'clean scrape' to download assets.")
		return nil
	}

	for _, d := range downloads {
		source := "network"
		if d.FromCache {
			source = "cache"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d bytes  %s\n",
			d.CreatedAt.Format("2006-01-02 15:04:05"), d.Agency, d.LocalPath, d.Size, source)
	}
	return nil
}
