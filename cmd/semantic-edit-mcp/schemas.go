package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/mcpserver"
)

// newSchemasCommand returns a "schemas" subcommand that prints every
// tool's JSON argument schema, letting a human (or a confused LLM) see
// exactly what each tool call should look like without reading the
// struct tags directly.
func newSchemasCommand() *cli.Command {
	return &cli.Command{
		Name:  "schemas",
		Usage: "Print the JSON schema for every tool's arguments",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			schemas := mcpserver.ToolSchemas()

			names := make([]string, 0, len(schemas))
			for name := range schemas {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Printf("=== %s ===\n%s\n\n", name, schemas[name])
			}
			return nil
		},
	}
}
