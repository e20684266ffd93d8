// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido search and maintenance tools via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/docservice"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *docservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Ranked full-text line search over the document corpus. "+
			"Matching is case-insensitive substring containment; results are sorted by score."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 10)")),
		mcp.WithNumber("offset", mcp.Description("Number of results to skip (default 0)")),
	), s.search)

	s.mcp.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Document count, total corpus size, and last scan time."),
	), s.getStats)

	s.mcp.AddTool(mcp.NewTool("get_status",
		mcp.WithDescription("Corpus health plus the same aggregates as get_stats."),
	), s.getStatus)

	s.mcp.AddTool(mcp.NewTool("run_maintenance",
		mcp.WithDescription("Run a maintenance task: cleanup (refresh the document cache), "+
			"update-stats (alias of cleanup), or clear-all (delete every cached document). "+
			"Unknown tasks are reported in the result, never an error."),
		mcp.WithString("task", mcp.Required(), mcp.Description("Task name")),
	), s.runMaintenance)

	s.mcp.AddTool(mcp.NewTool("add_document",
		mcp.WithDescription("Ingest a plain-text document into the corpus. The path is "+
			"relative to the corpus root and must carry the accepted extension."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new document (e.g. logs/app.txt)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Document content, UTF-8 plain text")),
	), s.addDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List every cached document with its size."),
	), s.listDocuments)

	// Resource: corpus format and behavior notes.
	s.mcp.AddResource(
		mcp.NewResource("raido://corpus-info", "Corpus Info",
			mcp.WithResourceDescription("What the corpus accepts and how search behaves."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCorpusInfoResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", 10)
	offset := req.GetInt("offset", 0)
	if limit < 0 || offset < 0 {
		return mcp.NewToolResultError("limit and offset must be non-negative"), nil
	}

	resp := s.svc.Search(ctx, query, limit, offset)
	out, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Stats(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Status(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) runMaintenance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := req.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(s.svc.RunMaintenance(ctx, task), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.svc.AddDocument(ctx, path, []byte(content))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s (%d bytes, sha256 %s)", info.Path, info.Size, info.Checksum)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := s.svc.ListDocuments(ctx)
	if len(docs) == 0 {
		return mcp.NewToolResultText("no documents in corpus"), nil
	}
	var lines []string
	for _, d := range docs {
		lines = append(lines, fmt.Sprintf("%s (%d bytes)", d.Path, d.Size))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readCorpusInfoResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://corpus-info",
			MIMEType: "text/markdown",
			Text:     CorpusInfo,
		},
	}, nil
}
