package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/leaguedoc/leaguedoc"
	main "github.com/leaguedoc/leaguedoc/cmd/leaguedoc"
	"github.com/leaguedoc/leaguedoc/crawl"
	"github.com/leaguedoc/leaguedoc/fs"
	"github.com/leaguedoc/leaguedoc/ingest"
	"github.com/leaguedoc/leaguedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	expectedCommands := []string{"sources", "crawl", "index", "search", "run", "serve"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"sources", "crawl", "index", "search", "run", "serve"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func testDeps(t *testing.T) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestSourcesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves discovered URLs to a file", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Pipeline = &ingest.Pipeline{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, _ string, _ *leaguedoc.URLFilter) ([]leaguedoc.URLRecord, error) {
					return []leaguedoc.URLRecord{
						{URL: "https://example.com/standings", Priority: 0.8},
						{URL: "https://example.com/fixtures", Priority: 0.7},
					}, nil
				},
			},
		}

		output := filepath.Join(t.TempDir(), "urls.txt")
		cmd := &main.SourcesCmd{URL: "https://example.com/sitemap.xml", Output: output}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Saved 2 URLs")

		records, err := fs.LoadURLList(output)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("blacklist keywords drop matching URLs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Pipeline = &ingest.Pipeline{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, _ string, filter *leaguedoc.URLFilter) ([]leaguedoc.URLRecord, error) {
					all := []leaguedoc.URLRecord{
						{URL: "https://example.com/standings", Priority: 0.5},
						{URL: "https://example.com/category/news", Priority: 0.5},
					}
					var out []leaguedoc.URLRecord
					for _, rec := range all {
						if filter.Match(rec.URL) {
							out = append(out, rec)
						}
					}
					return out, nil
				},
			},
		}

		output := filepath.Join(t.TempDir(), "urls.txt")
		cmd := &main.SourcesCmd{
			URL:       "https://example.com/sitemap.xml",
			Blacklist: []string{"category"},
			Output:    output,
		}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Saved 1 URLs")

		records, err := fs.LoadURLList(output)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "https://example.com/standings", records[0].URL)
	})

	t.Run("rejects invalid filter regex", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(t)
		cmd := &main.SourcesCmd{
			URL:    "https://example.com/sitemap.xml",
			Filter: []string{"["},
			Output: filepath.Join(t.TempDir(), "urls.txt"),
		}

		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "invalid filter pattern")
	})
}

// crawlerFunc adapts a function to the ingest.Crawler interface.
type crawlerFunc func(ctx context.Context, seeds []leaguedoc.URLRecord, progress crawl.ProgressFunc) ([]*leaguedoc.Document, *crawl.Result, error)

func (f crawlerFunc) Crawl(ctx context.Context, seeds []leaguedoc.URLRecord, progress crawl.ProgressFunc) ([]*leaguedoc.Document, *crawl.Result, error) {
	return f(ctx, seeds, progress)
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls a URL list into a documents file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := filepath.Join(dir, "urls.txt")
		require.NoError(t, fs.SaveURLList(input, []leaguedoc.URLRecord{
			{URL: "https://example.com/standings", Priority: 0.5},
		}))

		deps, stdout, _ := testDeps(t)
		deps.Pipeline = &ingest.Pipeline{
			Crawler: crawlerFunc(func(_ context.Context, seeds []leaguedoc.URLRecord, _ crawl.ProgressFunc) ([]*leaguedoc.Document, *crawl.Result, error) {
				docs := []*leaguedoc.Document{{
					SourceURL: seeds[0].URL,
					Content:   "League standings content.",
				}}
				return docs, &crawl.Result{Saved: 1, Bytes: 25, Tokens: 5}, nil
			}),
		}

		output := filepath.Join(dir, "documents.json")
		cmd := &main.CrawlCmd{Input: input, Output: output, Source: "rules"}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Saved 1 pages")

		docs, err := fs.LoadDocuments(output)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://example.com/standings", docs[0].SourceURL)
		assert.Equal(t, leaguedoc.SourceRules, docs[0].Source)
	})

	t.Run("missing input file is an error with a hint", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(t)
		cmd := &main.CrawlCmd{Input: filepath.Join(t.TempDir(), "missing.txt")}

		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "leaguedoc sources")
	})
}

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("missing input file is an error with a hint", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(t)
		cmd := &main.IndexCmd{Input: filepath.Join(t.TempDir(), "missing.json")}

		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "leaguedoc crawl")
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints formatted results", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, query string, opts leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
				assert.Equal(t, "relegation", query)
				assert.Equal(t, 3, opts.K)
				return []leaguedoc.SearchResult{{
					Chunk: &leaguedoc.Chunk{
						SourceURL: "https://example.com/rules",
						Content:   "Bottom two teams are relegated.",
					},
					Score: 0.88,
				}}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "relegation", K: 3}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "https://example.com/rules")
		assert.Contains(t, stdout.String(), "Bottom two teams are relegated.")
	})

	t.Run("empty index prints a hint", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, _ string, _ leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
				return []leaguedoc.SearchResult{}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "anything", K: 5}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No results")
	})
}

func TestMain_Run_DBPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("LEAGUEDOC_DB", path)

	m := main.NewMain()
	assert.Equal(t, path, m.DBPath)

	_ = os.Remove(path)
}
