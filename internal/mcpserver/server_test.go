package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/folio/internal/siteservice"
	"github.com/starford/folio/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	svc := siteservice.New(testutil.TestDB(t),
		siteservice.WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	)
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" helper; call the handlers.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_projects":
		result, err = srv.listProjects(ctx, req)
	case "search_projects":
		result, err = srv.searchProjects(ctx, req)
	case "get_project":
		result, err = srv.getProject(ctx, req)
	case "get_profile":
		result, err = srv.getProfile(ctx, req)
	case "list_skills":
		result, err = srv.listSkills(ctx, req)
	case "list_testimonials":
		result, err = srv.listTestimonials(ctx, req)
	case "get_content_contract":
		result, err = srv.getContentContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func projectIDs(t *testing.T, r *mcp.CallToolResult) []string {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool error: %s", resultText(r))
	}
	var items []siteservice.ProjectItem
	if err := json.Unmarshal([]byte(resultText(r)), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestListProjects(t *testing.T) {
	srv := testServer(t)

	if got := projectIDs(t, callTool(t, srv, "list_projects", map[string]any{})); len(got) != 12 {
		t.Errorf("all projects = %d, want 12", len(got))
	}

	got := projectIDs(t, callTool(t, srv, "list_projects", map[string]any{"category": "iot"}))
	want := []string{"smart-home-automation", "agricultural-monitoring"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("iot = %v, want %v", got, want)
	}

	got = projectIDs(t, callTool(t, srv, "list_projects", map[string]any{"tag": "aws"}))
	if len(got) != 3 {
		t.Errorf("aws = %v, want 3 projects", got)
	}
}

func TestGetProject(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_project", map[string]any{"id": "task-management"})
	if r.IsError {
		t.Fatalf("get_project: %s", resultText(r))
	}
	var item siteservice.ProjectItem
	if err := json.Unmarshal([]byte(resultText(r)), &item); err != nil {
		t.Fatal(err)
	}
	if item.ID != "task-management" || len(item.Categories) == 0 {
		t.Errorf("item = %+v", item)
	}

	r = callTool(t, srv, "get_project", map[string]any{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing project")
	}
	if resultText(r) != "not found: nope" {
		t.Errorf("error text = %q", resultText(r))
	}

	r = callTool(t, srv, "get_project", map[string]any{})
	if !r.IsError {
		t.Error("expected error for missing id")
	}
}

func TestSearchProjects(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_projects", map[string]any{"query": "Kotlin"})
	if r.IsError {
		t.Fatalf("search: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "task-management") {
		t.Errorf("search result = %s", resultText(r))
	}

	r = callTool(t, srv, "search_projects", map[string]any{"query": "zzzunmatched"})
	if resultText(r) != "no projects found" {
		t.Errorf("empty search = %q", resultText(r))
	}
}

func TestPortfolioTools(t *testing.T) {
	srv := testServer(t)

	var skills struct {
		Skills    []json.RawMessage `json:"skills"`
		Cards     []json.RawMessage `json:"cards"`
		Expertise []json.RawMessage `json:"expertise"`
	}
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_skills", nil))), &skills); err != nil {
		t.Fatal(err)
	}
	if len(skills.Skills) != 16 || len(skills.Cards) != 12 || len(skills.Expertise) != 3 {
		t.Errorf("skills = %d/%d/%d", len(skills.Skills), len(skills.Cards), len(skills.Expertise))
	}

	var testimonials []json.RawMessage
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_testimonials", nil))), &testimonials); err != nil {
		t.Fatal(err)
	}
	if len(testimonials) != 6 {
		t.Errorf("testimonials = %d, want 6", len(testimonials))
	}

	profile := resultText(callTool(t, srv, "get_profile", nil))
	if !strings.Contains(profile, `"profile"`) || !strings.Contains(profile, `"contact"`) {
		t.Errorf("profile = %s", profile)
	}
}

func TestContentContract(t *testing.T) {
	srv := testServer(t)

	if got := resultText(callTool(t, srv, "get_content_contract", nil)); got != ContentFormatContract {
		t.Error("contract tool returned unexpected text")
	}

	contents, err := srv.readContentFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("resource contents = %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != ContentFormatURI {
		t.Errorf("resource = %+v", contents[0])
	}
}
