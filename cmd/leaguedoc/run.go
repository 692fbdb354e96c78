package main

import (
	"fmt"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/crawl"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	filter, err := compileFilter(c.Filter, c.Exclude, c.Blacklist)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	result, err := deps.Pipeline.Run(deps.Ctx, c.URL, c.Seed, filter, leaguedoc.Source(c.Source), crawlProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaguedoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d of %d URLs (%d failed, %s, %s)\n",
		result.Crawl.Saved, result.URLs, result.Crawl.Failed,
		crawl.FormatBytes(result.Crawl.Bytes), crawl.FormatTokens(result.Crawl.Tokens))
	fmt.Fprintf(deps.Stdout, "Indexed %d documents as %d chunks in %d embedding batches\n",
		result.Index.Documents, result.Index.Chunks, result.Index.Batches)
	return nil
}
