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
	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/cache"
	"github.com/fwojciec/spicedocs/crawl"
	"github.com/fwojciec/spicedocs/goquery"
	spicehttp "github.com/fwojciec/spicedocs/http"
	"github.com/fwojciec/spicedocs/index"
	"github.com/fwojciec/spicedocs/mcp"
	spiceslog "github.com/fwojciec/spicedocs/slog"
	"github.com/fwojciec/spicedocs/sqlite"
)

// version is set by the release build.
var version = "dev"

// crawlRPS is the per-domain request rate used when downloading the
// documentation tree.
const crawlRPS = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache directory for the managed mirror. Set before calling Run().
	CacheDir string

	// SQLite database behind the document index.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CacheDir: cache.DefaultDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Log output goes to
// stderr; stdout carries the MCP stdio transport.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("spicedocs-mcp"),
		kong.Description("MCP server for the NAIF SPICE toolkit documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if cli.CacheDir {
		fmt.Fprintln(stdout, m.CacheDir)
		return nil
	}

	archiveRoot, dbPath, err := m.resolveArchive(ctx, cli, logger)
	if err != nil {
		return err
	}
	logger.Info("serving archive", "path", archiveRoot)

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open index database at %q: %w", dbPath, err)
	}
	defer m.Close()

	documents := sqlite.NewDocumentService(m.DB)

	// Build the index on first use.
	count, err := documents.CountDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}
	if count == 0 {
		builder := &index.Builder{
			Documents: documents,
			Parser:    goquery.NewParser(),
			Logger:    logger,
		}
		start := time.Now()
		n, err := builder.Rebuild(ctx, archiveRoot)
		if err != nil {
			return fmt.Errorf("failed to build index: %w", err)
		}
		logger.Info("index built", "pages", n, "duration", time.Since(start))
	}

	searcher := spiceslog.NewLoggingSearcher(sqlite.NewSearcher(m.DB), logger)
	if !searcher.Ranked() {
		logger.Warn("FTS5 unavailable, falling back to substring search")
	}

	server := &mcp.Server{
		ArchiveRoot: archiveRoot,
		Documents:   documents,
		Searcher:    searcher,
		Parser:      goquery.NewParser(),
		Logger:      logger,
		Version:     version,
	}
	return server.Run(ctx)
}

// resolveArchive returns the archive root to serve and the index database
// path. An explicit archive argument is used as-is; otherwise the managed
// cache is validated and refreshed as needed.
func (m *Main) resolveArchive(ctx context.Context, cli *CLI, logger *slog.Logger) (string, string, error) {
	if cli.Archive != "" {
		info, err := os.Stat(cli.Archive)
		if err != nil || !info.IsDir() {
			return "", "", fmt.Errorf("archive path %q is not a directory", cli.Archive)
		}
		return cli.Archive, filepath.Join(cli.Archive, spicedocs.IndexFilename), nil
	}

	if cli.Refresh {
		logger.Info("refreshing cache", "dir", m.CacheDir)
		if err := os.RemoveAll(m.CacheDir); err != nil {
			return "", "", fmt.Errorf("failed to clear cache at %q: %w", m.CacheDir, err)
		}
	}

	c := &cache.Cache{
		Dir:          m.CacheDir,
		BaseURL:      cache.BaseURLFromEnv(),
		SkipDownload: cache.SkipDownloadFromEnv(),
		MinFileCount: spicedocs.MinFileCount,
		Crawler: &crawl.Crawler{
			Fetcher: spicehttp.NewFetcher(),
			Parser:  goquery.NewParser(),
			Limiter: crawl.NewDomainLimiter(crawlRPS),
			Logger:  logger,
		},
		Logger: logger,
	}

	root, err := c.Ensure(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to initialize documentation cache: %w", err)
	}
	return root, filepath.Join(m.CacheDir, spicedocs.IndexFilename), nil
}
