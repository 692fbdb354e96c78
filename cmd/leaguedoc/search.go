package main

import (
	"fmt"

	"github.com/leaguedoc/leaguedoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	opts := leaguedoc.SearchOptions{
		K:        c.K,
		MinScore: c.Threshold,
	}
	if c.Source != "" {
		source := leaguedoc.Source(c.Source)
		opts.Source = &source
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaguedoc.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results. Run 'leaguedoc run' or 'leaguedoc index' to build the index first.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, leaguedoc.FormatResults(results))
	return nil
}
