// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the book's chapters and frontmatter metadata via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/preamble/internal/frontmatter"
	"github.com/starford/preamble/internal/index"
	"github.com/starford/preamble/internal/storage"
)

// Server wraps the MCP server with book tools.
type Server struct {
	mcp      *server.MCPServer
	store    storage.Provider
	db       *index.DB
	renderer frontmatter.Renderer
}

// New creates a new MCP server with all book tools registered.
func New(store storage.Provider, db *index.DB, renderer frontmatter.Renderer) *Server {
	s := &Server{store: store, db: db, renderer: renderer}

	s.mcp = server.NewMCPServer(
		"Preamble",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_chapters",
		mcp.WithDescription("Full-text search through chapter bodies, titles, and frontmatter."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchChapters)

	s.mcp.AddTool(mcp.NewTool("read_chapter",
		mcp.WithDescription("Read the raw Markdown source of a chapter, frontmatter included."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the chapter (e.g. guide/intro.md)")),
	), s.readChapter)

	s.mcp.AddTool(mcp.NewTool("list_chapters",
		mcp.WithDescription("List all chapters or chapters in a specific directory."),
		mcp.WithString("dir", mcp.Description("Optional directory to list (empty for all)")),
	), s.listChapters)

	s.mcp.AddTool(mcp.NewTool("get_frontmatter",
		mcp.WithDescription("Return the frontmatter entries of one chapter as JSON, in source order."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the chapter")),
	), s.getFrontmatter)

	s.mcp.AddTool(mcp.NewTool("get_frontmatter_contract",
		mcp.WithDescription("Returns the canonical frontmatter format the preprocessor understands. "+
			"Call this before writing or editing chapter metadata."),
	), s.getFrontmatterContract)

	// Resource: frontmatter format contract.
	s.mcp.AddResource(
		mcp.NewResource("preamble://frontmatter-format", "Frontmatter Format Contract",
			mcp.WithResourceDescription("Canonical chapter frontmatter format the preprocessor renders."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) searchChapters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readChapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listChapters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := ""
	if d, err := req.RequireString("dir"); err == nil {
		dir = d
	}

	metas, err := s.store.List(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) getFrontmatter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := s.db.Entries(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no frontmatter"), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getFrontmatterContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FrontmatterContract), nil
}

func (s *Server) readContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "preamble://frontmatter-format",
			MIMEType: "text/markdown",
			Text:     FrontmatterContract,
		},
	}, nil
}
