package main

import (
	"fmt"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/crawl"
	"github.com/leaguedoc/leaguedoc/fs"
)

// crawlProgress prints crawl progress to the command's writers.
func crawlProgress(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s\n", crawl.TruncateURL(event.URL, 76))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	records, err := fs.LoadURLList(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error reading %s: %v\n", c.Input, err)
		fmt.Fprintln(deps.Stderr, "Hint: run 'leaguedoc sources' first to create a URL list")
		return err
	}

	docs, result, err := deps.Pipeline.Fetch(deps.Ctx, records, leaguedoc.Source(c.Source), crawlProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	if err := fs.SaveDocuments(c.Output, docs); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
		return err
	}
	if c.Dump != "" {
		if err := fs.DumpText(c.Dump, docs); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Dump, err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages to %s (%d failed, %s, %s)\n",
		result.Saved, c.Output, result.Failed,
		crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	return nil
}
