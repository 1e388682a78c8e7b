// Package mcp exposes read-only Tester Talk lookups as MCP tools over
// stdio, so coding agents can pull issue context while investigating
// test failures.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"testertalk/internal/api"
	"testertalk/internal/pathinfo"
)

// Server wraps the MCP SDK server around a Tester Talk client.
type Server struct {
	MCPServer *sdkmcp.Server
	client    *api.Client
}

// NewServer creates an MCP server with the issue lookup tools.
func NewServer(client *api.Client) *Server {
	s := &Server{client: client}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "testertalk", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_issues",
		Description: "Search test-case issues by free text and filters (status, severity, release, platform, build, target). Empty filters are ignored.",
	}, s.handleSearchIssues)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_issue",
		Description: "Get one issue by ID, including tags, vote score, extra testcase paths and attachment names.",
	}, s.handleGetIssue)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_comments",
		Description: "List the comments on an issue, newest first, with vote scores and the verified-solution flag.",
	}, s.handleListComments)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "inspect_path",
		Description: "Derive release, platform and bucket name from a testcase path without talking to the server.",
	}, s.handleInspectPath)
}

// --- Tool input/output types ---

type searchIssuesInput struct {
	Search   string `json:"search,omitempty" jsonschema:"free text matched against title, path and description"`
	Status   string `json:"status,omitempty" jsonschema:"issue status (open, in_progress, resolved, closed, ccr)"`
	Severity string `json:"severity,omitempty" jsonschema:"severity (Critical, High, Medium, Low)"`
	Release  string `json:"release,omitempty" jsonschema:"release number (261, 251, 231)"`
	Platform string `json:"platform,omitempty" jsonschema:"platform code, e.g. lnx86"`
	Build    string `json:"build,omitempty" jsonschema:"build name"`
	Target   string `json:"target,omitempty" jsonschema:"target name, release-specific"`
	Size     int    `json:"size,omitempty" jsonschema:"max results (server default when 0)"`
}

type searchIssuesOutput struct {
	Issues []api.Issue `json:"issues"`
	Total  int         `json:"total"`
}

type getIssueInput struct {
	ID int `json:"id" jsonschema:"issue ID"`
}

type getIssueOutput struct {
	Issue *api.Issue `json:"issue"`
}

type listCommentsInput struct {
	IssueID int `json:"issue_id" jsonschema:"issue ID"`
}

type listCommentsOutput struct {
	Comments []api.Comment `json:"comments"`
	Total    int           `json:"total"`
}

type inspectPathInput struct {
	Path string `json:"path" jsonschema:"testcase path, e.g. /lan/fed/etpv5/release/251/lnx86/etautotest/BUCKET1/tc_x"`
}

type inspectPathOutput struct {
	Recognized bool   `json:"recognized"`
	Release    string `json:"release,omitempty"`
	Platform   string `json:"platform,omitempty"`
	Display    string `json:"platform_display,omitempty"`
	Bucket     string `json:"bucket,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleSearchIssues(ctx context.Context, _ *sdkmcp.CallToolRequest, input searchIssuesInput) (*sdkmcp.CallToolResult, searchIssuesOutput, error) {
	resp, err := s.client.Issues().Search(ctx, api.SearchRequest{
		Search:   input.Search,
		Status:   input.Status,
		Severity: input.Severity,
		Release:  input.Release,
		Platform: input.Platform,
		Build:    input.Build,
		Target:   input.Target,
		Size:     input.Size,
	})
	if err != nil {
		return nil, searchIssuesOutput{}, fmt.Errorf("search_issues: %w", err)
	}
	return nil, searchIssuesOutput{Issues: resp.Issues, Total: resp.Total}, nil
}

func (s *Server) handleGetIssue(ctx context.Context, _ *sdkmcp.CallToolRequest, input getIssueInput) (*sdkmcp.CallToolResult, getIssueOutput, error) {
	issue, err := s.client.Issues().Get(ctx, input.ID)
	if err != nil {
		return nil, getIssueOutput{}, fmt.Errorf("get_issue: %w", err)
	}
	return nil, getIssueOutput{Issue: issue}, nil
}

func (s *Server) handleListComments(ctx context.Context, _ *sdkmcp.CallToolRequest, input listCommentsInput) (*sdkmcp.CallToolResult, listCommentsOutput, error) {
	comments, err := s.client.Issues().Comments(ctx, input.IssueID)
	if err != nil {
		return nil, listCommentsOutput{}, fmt.Errorf("list_comments: %w", err)
	}
	return nil, listCommentsOutput{Comments: comments, Total: len(comments)}, nil
}

func (s *Server) handleInspectPath(_ context.Context, _ *sdkmcp.CallToolRequest, input inspectPathInput) (*sdkmcp.CallToolResult, inspectPathOutput, error) {
	info, ok := pathinfo.ExtractInfo(input.Path)
	if !ok {
		return nil, inspectPathOutput{Recognized: false}, nil
	}
	out := inspectPathOutput{
		Recognized: true,
		Release:    info.Release,
		Platform:   info.PlatformCode,
		Display:    info.Platform,
	}
	if bucket, ok := pathinfo.ExtractBucketName(input.Path); ok {
		out.Bucket = bucket
	}
	return nil, out, nil
}
