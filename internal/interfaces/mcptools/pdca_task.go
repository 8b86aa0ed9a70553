package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	taskapp "inboxassist/internal/application/task"
	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
)

// TaskService is implemented by the task use case.
type TaskService interface {
	Create(ctx context.Context, in task.CreateInput) (*task.Task, error)
	Update(ctx context.Context, in taskapp.UpdateInput) (*task.Task, error)
	Get(ctx context.Context, id string) (*task.Task, error)
	ListOpen(ctx context.Context) ([]*task.Task, error)
	Close(ctx context.Context, id string, result task.Result, lessons string) (*task.Task, error)
}

// PDCATaskTool handles the pdca_task MCP tool.
type PDCATaskTool struct {
	tasks TaskService
}

func NewPDCATaskTool(tasks TaskService) *PDCATaskTool {
	return &PDCATaskTool{tasks: tasks}
}

// Definition returns the MCP tool definition for registration.
func (t *PDCATaskTool) Definition() mcp.Tool {
	return mcp.NewTool("pdca_task",
		mcp.WithDescription(
			"PDCA task manager for the Plan-Do-Check-Act cycle. "+
				"Actions: create, update, list, check, close.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum("create", "update", "list", "check", "close"),
		),
		mcp.WithString("task_id", mcp.Description("Task id (update, check, close)")),
		mcp.WithString("title", mcp.Description("Task title (create)")),
		mcp.WithString("description"),
		mcp.WithString("priority", mcp.Enum("P0", "P1", "P2", "P3")),
		mcp.WithString("assignee"),
		mcp.WithString("deadline", mcp.Description("YYYY-MM-DD")),
		mcp.WithString("metrics", mcp.Description("Success metrics (create)")),
		mcp.WithString("phase", mcp.Enum("plan", "do", "check", "act")),
		mcp.WithString("notes"),
		mcp.WithString("status"),
		mcp.WithString("result", mcp.Enum("success", "fail", "pivot")),
		mcp.WithString("lessons_learned"),
	)
}

// Handle processes the pdca_task tool call.
func (t *PDCATaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := strings.ToLower(strings.TrimSpace(req.GetString("action", "")))
	taskID := req.GetString("task_id", "")

	var (
		text string
		err  error
	)
	switch action {
	case "create":
		text, err = t.create(ctx, req)
	case "update":
		text, err = t.update(ctx, taskID, req)
	case "list":
		text, err = t.list(ctx)
	case "check":
		text, err = t.check(ctx, taskID)
	case "close":
		text, err = t.close(ctx, taskID, req)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("⚠️ Unknown action: %s. Must be create/update/list/check/close", action)), nil
	}

	if err != nil {
		return toolError(err, taskID)
	}
	return mcp.NewToolResultText(text), nil
}

func (t *PDCATaskTool) create(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	created, err := t.tasks.Create(ctx, task.CreateInput{
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		Priority:    inbox.Priority(req.GetString("priority", string(inbox.PriorityP2))),
		Assignee:    req.GetString("assignee", ""),
		Deadline:    req.GetString("deadline", ""),
		Metrics:     req.GetString("metrics", ""),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OK: task created id=%s priority=%s title='%s'", created.ID, created.Priority, created.Title), nil
}

func (t *PDCATaskTool) update(ctx context.Context, id string, req mcp.CallToolRequest) (string, error) {
	_, err := t.tasks.Update(ctx, taskapp.UpdateInput{
		ID:     id,
		Phase:  req.GetString("phase", ""),
		Notes:  req.GetString("notes", ""),
		Status: req.GetString("status", ""),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OK: task %s updated", id), nil
}

func (t *PDCATaskTool) list(ctx context.Context) (string, error) {
	open, err := t.tasks.ListOpen(ctx)
	if err != nil {
		return "", err
	}
	if len(open) == 0 {
		return "No open tasks.", nil
	}

	lines := []string{"# Open PDCA Tasks\n"}
	for _, tk := range open {
		lines = append(lines, fmt.Sprintf("- [%s] **%s** — %s  | assignee: %s  | deadline: %s",
			tk.Priority, tk.ID, tk.Title, orDash(tk.Assignee), orDash(tk.Deadline)))
	}
	return strings.Join(lines, "\n"), nil
}

func (t *PDCATaskTool) check(ctx context.Context, id string) (string, error) {
	tk, err := t.tasks.Get(ctx, id)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(tk, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding task: %w", err)
	}
	return string(out), nil
}

func (t *PDCATaskTool) close(ctx context.Context, id string, req mcp.CallToolRequest) (string, error) {
	result := task.Result(req.GetString("result", ""))
	if _, err := t.tasks.Close(ctx, id, result, req.GetString("lessons_learned", "")); err != nil {
		return "", err
	}
	return fmt.Sprintf("OK: task %s closed result=%s", id, result), nil
}

// toolError turns validation failures into tool-level errors the caller can
// read; anything else is a server fault.
func toolError(err error, taskID string) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return mcp.NewToolResultError("⚠️ Task not found: " + taskID), nil
	case errors.Is(err, task.ErrInvalidPhase),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidResult):
		return mcp.NewToolResultError("⚠️ " + err.Error()), nil
	}
	return nil, err
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
