package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/crawl"
	"github.com/leaguedoc/leaguedoc/gemini"
	"github.com/leaguedoc/leaguedoc/goquery"
	"github.com/leaguedoc/leaguedoc/htmltomarkdown"
	lhttp "github.com/leaguedoc/leaguedoc/http"
	"github.com/leaguedoc/leaguedoc/ingest"
	"github.com/leaguedoc/leaguedoc/openai"
	"github.com/leaguedoc/leaguedoc/rod"
	"github.com/leaguedoc/leaguedoc/split"
	"github.com/leaguedoc/leaguedoc/sqlite"
	"github.com/leaguedoc/leaguedoc/tiktoken"
	"github.com/leaguedoc/leaguedoc/trafilatura"
	"google.golang.org/genai"
)

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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService leaguedoc.DocumentService
	ChunkService    leaguedoc.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leaguedoc"),
		kong.Description("Crawl, index and search sports league websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leaguedoc --help' to see available commands")
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
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEAGUEDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	m.ChunkService = sqlite.NewChunkService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Chunks = m.ChunkService
	deps.Sitemaps = lhttp.NewSitemapService(nil, deps.Logger)

	tokenCounter, err := tiktoken.NewTokenCounter(tiktoken.DefaultEncoding)
	if err != nil {
		return fmt.Errorf("failed to create token counter: %w", err)
	}

	deps.Pipeline = &ingest.Pipeline{
		Sitemaps:  deps.Sitemaps,
		Documents: deps.Documents,
		Chunks:    deps.Chunks,
		Logger:    deps.Logger,
		Splitter:  &split.Splitter{TokenCounter: tokenCounter},
	}

	// Commands that embed or search need an embedder.
	if cmd == "index" || cmd == "search" || cmd == "run" || cmd == "serve" {
		embedder, err := newEmbedder(ctx, cli.Embedder, stderr)
		if err != nil {
			return err
		}
		deps.Pipeline.Embedder = embedder
		deps.Search = sqlite.NewSearchService(m.DB, embedder)
	}

	// Commands that crawl need a fetcher and the extraction stack.
	if cmd == "crawl" || cmd == "run" {
		var fetcher leaguedoc.Fetcher
		if cli.Render {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		} else {
			fetcher = lhttp.NewFetcher()
		}
		defer fetcher.Close()

		deps.Pipeline.Crawler = &crawl.Crawler{
			Fetcher:      fetcher,
			Extractor:    newExtractor(cli.Extractor),
			Converter:    newConverter(cli.Markdown),
			TokenCounter: tokenCounter,
			Limiter:      crawl.NewDomainLimiter(1.0),
			Concurrency:  cli.Concurrency,
			MaxDepth:     cli.Depth,
		}
	}

	return kongCtx.Run(deps)
}

// newExtractor builds the extraction strategy selected by --extractor.
// The article extractor targets the league site's published-article
// markup; trafilatura is generic boilerplate removal for other sites.
func newExtractor(name string) leaguedoc.Extractor {
	if name == "trafilatura" {
		return trafilatura.NewExtractor()
	}
	return goquery.NewExtractor()
}

// newConverter picks how extracted HTML becomes stored text.
func newConverter(markdown bool) leaguedoc.Converter {
	if markdown {
		return htmltomarkdown.NewConverter()
	}
	return goquery.NewTextConverter()
}

// newEmbedder builds the embedding backend selected by --embedder.
func newEmbedder(ctx context.Context, name string, stderr io.Writer) (leaguedoc.Embedder, error) {
	switch name {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return openai.NewEmbedder(apiKey), nil

	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewEmbedder(client, ""), nil

	default:
		return nil, fmt.Errorf("unknown embedder %q", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("LEAGUEDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "leaguedoc.db"
	}
	dir := filepath.Join(home, ".leaguedoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "leaguedoc.db")
}
