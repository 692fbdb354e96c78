package main

import (
	"fmt"
	"regexp"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/fs"
)

// compileFilter builds a URLFilter from include and exclude patterns
// plus blacklist keywords, validating the regexes early.
func compileFilter(include, exclude, blacklist []string) (*leaguedoc.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 && len(blacklist) == 0 {
		return nil, nil
	}
	filter := &leaguedoc.URLFilter{Blacklist: blacklist}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	filter, err := compileFilter(c.Filter, c.Exclude, c.Blacklist)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	records, err := deps.Pipeline.Sources(deps.Ctx, c.URL, c.Seed, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaguedoc.ErrorMessage(err))
		return err
	}

	if err := fs.SaveURLList(c.Output, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d URLs to %s\n", len(records), c.Output)
	return nil
}
