package main

import (
	"fmt"

	"github.com/leaguedoc/leaguedoc/fs"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	docs, err := fs.LoadDocuments(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error reading %s: %v\n", c.Input, err)
		fmt.Fprintln(deps.Stderr, "Hint: run 'leaguedoc crawl' first to create a documents file")
		return err
	}

	result, err := deps.Pipeline.Index(deps.Ctx, docs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents as %d chunks in %d embedding batches (~%d tokens)\n",
		result.Documents, result.Chunks, result.Batches, result.Tokens)
	return nil
}
