// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the portfolio to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/siteservice"
)

// ContentFormatURI is the resource URI of the content format contract.
const ContentFormatURI = "folio://content-format"

// Server wraps the MCP server with the portfolio tools.
type Server struct {
	mcp *server.MCPServer
	svc *siteservice.Service
}

// New creates a new MCP server with all portfolio tools registered.
func New(svc *siteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects in display order, optionally filtered by category tab or tag."),
		mcp.WithString("category", mcp.Description("Category tab id (e.g. cloud, iot, ml); empty or all for every project")),
		mcp.WithString("tag", mcp.Description("Technology tag, case-insensitive (e.g. AWS)")),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Full-text search through project titles, descriptions and tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get one project with its tags and categories."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id (e.g. sentiment-analysis)")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Get the profile: name, tagline, about paragraphs and contact details."),
	), s.getProfile)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List skill bars with percentages, skill cards and expertise areas."),
	), s.listSkills)

	s.mcp.AddTool(mcp.NewTool("list_testimonials",
		mcp.WithDescription("List client testimonials."),
	), s.listTestimonials)

	s.mcp.AddTool(mcp.NewTool("get_content_contract",
		mcp.WithDescription("Returns the portfolio content format. "+
			"Call this before drafting or editing portfolio.yaml."),
	), s.getContentContract)

	// Resource: content format contract.
	s.mcp.AddResource(
		mcp.NewResource(ContentFormatURI, "Content Format Contract",
			mcp.WithResourceDescription("Structure and rules of the portfolio document."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, _, err := s.svc.ListProjects(ctx, siteservice.ListQuery{
		Category: req.GetString("category", ""),
		Tag:      req.GetString("tag", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}

func (s *Server) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no projects found"), nil
	}
	return jsonResult(results)
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	item, err := s.svc.GetProject(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(item)
}

func (s *Server) getProfile(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := s.svc.Portfolio()
	return jsonResult(map[string]any{
		"profile": p.Profile,
		"contact": p.Contact,
	})
}

func (s *Server) listSkills(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := s.svc.Portfolio()
	return jsonResult(map[string]any{
		"skills":    p.Skills,
		"cards":     p.SkillCards,
		"expertise": p.Expertise,
	})
}

func (s *Server) listTestimonials(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Portfolio().Testimonials)
}

func (s *Server) getContentContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentFormatContract), nil
}

func (s *Server) readContentFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ContentFormatURI,
			MIMEType: "text/markdown",
			Text:     ContentFormatContract,
		},
	}, nil
}
