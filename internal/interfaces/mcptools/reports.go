package mcptools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"inboxassist/internal/application/report"
)

// ReportService is implemented by report.Service.
type ReportService interface {
	MorningBriefing(ctx context.Context) (string, error)
	WeeklyReport(ctx context.Context, weekStart string) (string, error)
	DecisionMemo(topic, background string, options []string) (string, error)
}

// MorningBriefingTool handles the morning_briefing MCP tool.
type MorningBriefingTool struct {
	reports ReportService
}

func NewMorningBriefingTool(reports ReportService) *MorningBriefingTool {
	return &MorningBriefingTool{reports: reports}
}

func (t *MorningBriefingTool) Definition() mcp.Tool {
	return mcp.NewTool("morning_briefing",
		mcp.WithDescription(
			"Generate the morning briefing: overdue and critical tasks, key metrics, "+
				"risks and blockers, latest routed inbox messages.",
		),
	)
}

func (t *MorningBriefingTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := t.reports.MorningBriefing(ctx)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// WeeklyReportTool handles the weekly_report MCP tool.
type WeeklyReportTool struct {
	reports ReportService
}

func NewWeeklyReportTool(reports ReportService) *WeeklyReportTool {
	return &WeeklyReportTool{reports: reports}
}

func (t *WeeklyReportTool) Definition() mcp.Tool {
	return mcp.NewTool("weekly_report",
		mcp.WithDescription(
			"Generate the weekly report: plan/fact, achievements, blockers, "+
				"next week priorities and a PDCA cycle forecast.",
		),
		mcp.WithString("week_start",
			mcp.Description("Week start date YYYY-MM-DD (defaults to current week Monday)"),
		),
	)
}

func (t *WeeklyReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := t.reports.WeeklyReport(ctx, req.GetString("week_start", ""))
	if errors.Is(err, report.ErrInvalidWeekStart) {
		return mcp.NewToolResultError("⚠️ " + err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// DecisionMemoTool handles the decision_memo MCP tool.
type DecisionMemoTool struct {
	reports ReportService
}

func NewDecisionMemoTool(reports ReportService) *DecisionMemoTool {
	return &DecisionMemoTool{reports: reports}
}

func (t *DecisionMemoTool) Definition() mcp.Tool {
	return mcp.NewTool("decision_memo",
		mcp.WithDescription(
			"Generate an analytical decision memo: problem scale, forecast, "+
				"context, options and the recommended option.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Decision topic"),
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Background context and data"),
		),
		mcp.WithArray("options",
			mcp.Required(),
			mcp.Description("List of options (first will be recommended)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func (t *DecisionMemoTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := t.reports.DecisionMemo(
		req.GetString("topic", ""),
		req.GetString("context", ""),
		req.GetStringSlice("options", nil),
	)
	if errors.Is(err, report.ErrNoTopic) {
		return mcp.NewToolResultError("'topic' is required"), nil
	}
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
