// Package mcpserver exposes the editing pipeline over the five JSON-RPC
// tool verbs defined by spec §6: set_working_directory, open_files,
// preview_edit, retarget_edit, persist_edit. Grounded on mcp/server.go's
// AddTool registration pattern.
package mcpserver

import (
	"context"
	"sync"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/cache"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/lang"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/session"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/stage"
)

// Tools bundles every dependency the five tool handlers need.
type Tools struct {
	registry *lang.Registry
	sessions *session.Store[SessionData]
	cache    *cache.Cache
	log      zerolog.Logger

	// fallbackSessionID is handed to a caller that never supplies a
	// session id at all (neither an explicit session_id argument nor a
	// transport-assigned one) — generated once per process so that such
	// calls still share one session rather than colliding on a fixed
	// literal.
	fallbackSessionID string

	stagesMu sync.Mutex
	stages   map[string]*stage.Store
}

// New builds a Tools instance. sessionStoragePath is passed straight to
// session.New; an empty string keeps sessions in memory only.
// formatterOverrides replaces a registered language's default formatter,
// keyed by language name, per the config file's formatters section.
func New(sessionStoragePath string, cacheCapacity int, formatterOverrides map[string]lang.FormatterOverride, logger zerolog.Logger) (*Tools, error) {
	registry, err := lang.NewRegistry(formatterOverrides)
	if err != nil {
		return nil, err
	}

	sessions, err := session.New[SessionData](sessionStoragePath)
	if err != nil {
		return nil, err
	}

	fileCache, err := cache.New(cacheCapacity)
	if err != nil {
		return nil, err
	}

	return &Tools{
		registry:          registry,
		sessions:          sessions,
		cache:             fileCache,
		log:               logger,
		fallbackSessionID: uuid.NewString(),
		stages:            make(map[string]*stage.Store),
	}, nil
}

func (t *Tools) stageFor(sessionID string) *stage.Store {
	t.stagesMu.Lock()
	defer t.stagesMu.Unlock()
	s, ok := t.stages[sessionID]
	if !ok {
		s = stage.New()
		t.stages[sessionID] = s
	}
	return s
}

// NewServer constructs the MCP server and registers all five tools; no
// resources are registered.
func NewServer(t *Tools) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "semantic-edit-mcp"}, &mcpsdk.ServerOptions{HasTools: true})

	server.AddReceivingMiddleware(func(next mcpsdk.MethodHandler) mcpsdk.MethodHandler {
		return func(ctx context.Context, method string, req mcpsdk.Request) (mcpsdk.Result, error) {
			t.log.Info().Str("method", method).Str("session_id", req.GetSession().ID()).Msg("mcp request")
			return next(ctx, method, req)
		}
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "set_working_directory",
		Description: "Set the base directory subsequent relative paths in this session resolve against",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args SetWorkingDirectoryParams) (*mcpsdk.CallToolResult, any, error) {
		return t.handleSetWorkingDirectory(ctx, t.sessionIDFrom(req, args.SessionID), args)
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "open_files",
		Description: "Load one or more files into the file-view cache and return their contents, AST dump, and language documentation; with diff_since and a single path, returns a diff against a previously seen version instead",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args OpenFilesParams) (*mcpsdk.CallToolResult, any, error) {
		return t.handleOpenFiles(ctx, t.sessionIDFrom(req, args.SessionID), args)
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "preview_edit",
		Description: "Plan and dry-run an edit, returning a diff without touching disk; stages the edit for persist_edit",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args PreviewEditParams) (*mcpsdk.CallToolResult, any, error) {
		return t.handlePreviewEdit(ctx, t.sessionIDFrom(req, args.SessionID), args)
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "retarget_edit",
		Description: "Replan the currently staged edit's content against a new selector, without re-supplying the content",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args RetargetEditParams) (*mcpsdk.CallToolResult, any, error) {
		return t.handleRetargetEdit(ctx, t.sessionIDFrom(req, args.SessionID), args)
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "persist_edit",
		Description: "Write the currently staged edit to disk",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args PersistEditParams) (*mcpsdk.CallToolResult, any, error) {
		return t.handlePersistEdit(ctx, t.sessionIDFrom(req, args.SessionID), args)
	})

	return server
}

func (t *Tools) sessionIDFrom(req *mcpsdk.CallToolRequest, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if req != nil && req.Session != nil {
		if id := req.Session.ID(); id != "" {
			return id
		}
	}
	return t.fallbackSessionID
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}}}
}

func errorResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{IsError: true, Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}}}
}
