package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/civicdata/clean"
	"github.com/civicdata/clean/fs"
	"github.com/civicdata/clean/goquery"
	"github.com/civicdata/clean/resty"
	"github.com/civicdata/clean/scrape"
	cleanslog "github.com/civicdata/clean/slog"
	"github.com/civicdata/clean/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A local .env may carry CLEAN_DATA_DIR, CLEAN_CACHE_DIR, CLEAN_DB.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Storage locations. Set before calling Run().
	DataDir  string
	CacheDir string
	DBPath   string

	// SQLite database backing the download ledger.
	DB *sqlite.DB

	// Ledger service, exposed for end-to-end testing.
	Ledger clean.LedgerService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataDir:  defaultDir("CLEAN_DATA_DIR", "data"),
		CacheDir: defaultDir("CLEAN_CACHE_DIR", "cache"),
		DBPath:   defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Agencies: builtinAgencies,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clean"),
		kong.Description("Scrape and download public-records disclosure assets."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'clean --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Open the ledger database.
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CLEAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Ledger = sqlite.NewLedgerService(m.DB)
	deps.Ledger = m.Ledger

	deps.NewScraper = func(agency clean.Agency, throttleSeconds int, continueOnError bool) (*scrape.Scraper, func() error) {
		httpFetcher := resty.NewFetcher()

		// Every request, page or asset, passes the same throttle.
		throttle := scrape.NewThrottle(time.Duration(throttleSeconds) * time.Second)
		fetcher := scrape.NewThrottledFetcher(
			cleanslog.NewLoggingFetcher(httpFetcher, logger),
			throttle,
		)

		cache := cleanslog.NewLoggingCache(fs.NewCache(m.CacheDir, fetcher), logger)

		s := &scrape.Scraper{
			Agency:          agency,
			Cache:           cache,
			Fetcher:         fetcher,
			Parser:          goquery.NewParser(),
			Ledger:          m.Ledger,
			DataDir:         m.DataDir,
			ContinueOnError: continueOnError,
			Logger:          logger,
		}
		return s, httpFetcher.Close
	}

	return kongCtx.Run(deps)
}

// defaultDir resolves a storage directory from the environment, falling
// back to ~/.clean/<name>.
func defaultDir(envVar, name string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".clean", name)
	_ = os.MkdirAll(dir, 0755)
	return dir
}

func defaultDBPath() string {
	if path := os.Getenv("CLEAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "clean.db"
	}
	dir := filepath.Join(home, ".clean")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "clean.db")
}
