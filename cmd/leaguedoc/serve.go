package main

import (
	"fmt"

	"github.com/leaguedoc/leaguedoc/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server, err := mcp.NewServer(deps.Search, deps.Documents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.HTTP != "" {
		fmt.Fprintf(deps.Stderr, "Serving MCP over HTTP on %s\n", c.HTTP)
		return server.RunHTTP(deps.Ctx, c.HTTP)
	}
	return server.Run(deps.Ctx)
}
