// Package mcptools exposes the inbox router, the PDCA tracker and the
// reports as MCP tools.
package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer registers every tool on a fresh MCP server. Only wiring lives here.
func NewServer(tasks TaskService, reports ReportService) *server.MCPServer {
	s := server.NewMCPServer(
		"inboxassist",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	routeTool := NewInboxRouteTool()
	s.AddTool(routeTool.Definition(), routeTool.Handle)

	taskTool := NewPDCATaskTool(tasks)
	s.AddTool(taskTool.Definition(), taskTool.Handle)

	briefingTool := NewMorningBriefingTool(reports)
	s.AddTool(briefingTool.Definition(), briefingTool.Handle)

	weeklyTool := NewWeeklyReportTool(reports)
	s.AddTool(weeklyTool.Definition(), weeklyTool.Handle)

	memoTool := NewDecisionMemoTool(reports)
	s.AddTool(memoTool.Definition(), memoTool.Handle)

	return s
}
