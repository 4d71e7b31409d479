// Command semantic-edit-mcp runs the syntax-aware source-editing engine as
// a Model Context Protocol server over stdio, grounded on cli/cli.go's
// urfave/cli command wiring and mcp/server.go's tool registration pattern.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/config"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/lang"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/mcpserver"
)

func main() {
	cmd := &cli.Command{
		Name:  "semantic-edit-mcp",
		Usage: "Syntax-aware source editing exposed as an MCP tool server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to a YAML or TOML config file; defaults to ~/.semantic-edit-mcp/config.yaml"},
			&cli.StringFlag{Name: "session-storage", Usage: "Override the config's session_storage_path; empty disables disk persistence"},
			&cli.IntFlag{Name: "cache-capacity", Usage: "Override the config's file-view cache capacity"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "trace, debug, info, warn, error"},
		},
		Commands: []*cli.Command{
			newSchemasCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd.String("log-level"))

	configPath := cmd.String("config")
	if configPath == "" {
		defaultPath, err := config.DefaultPath()
		if err == nil {
			configPath = defaultPath
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if v := cmd.String("session-storage"); cmd.IsSet("session-storage") {
		cfg.SessionStoragePath = v
	}
	if cmd.IsSet("cache-capacity") {
		cfg.CacheCapacity = cmd.Int("cache-capacity")
	}

	instanceID := uuid.NewString()
	logger = logger.With().Str("instance_id", instanceID).Logger()
	logger.Info().
		Str("session_storage_path", cfg.SessionStoragePath).
		Int("cache_capacity", cfg.CacheCapacity).
		Msg("starting semantic-edit-mcp")

	tools, err := mcpserver.New(cfg.SessionStoragePath, cfg.CacheCapacity, formatterOverrides(cfg.Formatters), logger)
	if err != nil {
		return fmt.Errorf("constructing tool server: %w", err)
	}

	server := mcpserver.NewServer(tools)

	transport := &mcpsdk.StdioTransport{}
	if err := server.Run(ctx, transport); err != nil {
		return fmt.Errorf("running mcp server: %w", err)
	}
	return nil
}

// formatterOverrides adapts the config file's formatter overrides to the
// lang package's own type, keeping lang free of a dependency on config.
func formatterOverrides(overrides map[string]config.FormatterOverride) map[string]lang.FormatterOverride {
	if len(overrides) == 0 {
		return nil
	}
	out := make(map[string]lang.FormatterOverride, len(overrides))
	for name, o := range overrides {
		out[name] = lang.FormatterOverride{Command: o.Command, Args: o.Args}
	}
	return out
}

// newLogger builds a zerolog.Logger writing to stderr: stdout is reserved
// for the JSON-RPC transport, so anything the server logs for a human must
// go elsewhere, mirroring logger.Get()'s console-writer setup generalized
// to a single-process CLI tool rather than a long-running service with
// rotating file output.
func newLogger(levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		level = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
