// Package task models a Plan-Do-Check-Act task card.
package task

import (
	"sort"
	"strings"
	"time"

	"inboxassist/internal/domain/inbox"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Phase string

const (
	PhasePlan  Phase = "plan"
	PhaseDo    Phase = "do"
	PhaseCheck Phase = "check"
	PhaseAct   Phase = "act"
)

// Phases lists the PDCA phases in cycle order.
var Phases = []Phase{PhasePlan, PhaseDo, PhaseCheck, PhaseAct}

func (p Phase) IsValid() bool {
	switch p {
	case PhasePlan, PhaseDo, PhaseCheck, PhaseAct:
		return true
	}
	return false
}

const (
	PhaseStatusPending    = "pending"
	PhaseStatusInProgress = "in_progress"
)

type Result string

const (
	ResultSuccess Result = "success"
	ResultFail    Result = "fail"
	ResultPivot   Result = "pivot"
)

func (r Result) IsValid() bool {
	switch r {
	case ResultSuccess, ResultFail, ResultPivot:
		return true
	}
	return false
}

type PhaseState struct {
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

type Task struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Priority       inbox.Priority        `json:"priority"`
	Assignee       string                `json:"assignee"`
	Deadline       string                `json:"deadline"`
	Metrics        string                `json:"metrics"`
	Phases         map[Phase]*PhaseState `json:"phases"`
	CreatedAt      time.Time             `json:"created_at"`
	ClosedAt       *time.Time            `json:"closed_at"`
	Result         *Result               `json:"result"`
	LessonsLearned *string               `json:"lessons_learned"`
	Status         Status                `json:"status"`
}

// New builds an open task with every phase pending.
func New(id, title string, priority inbox.Priority, now time.Time) *Task {
	phases := make(map[Phase]*PhaseState, len(Phases))
	for _, p := range Phases {
		phases[p] = &PhaseState{Status: PhaseStatusPending}
	}
	return &Task{
		ID:        id,
		Title:     title,
		Priority:  priority,
		Phases:    phases,
		CreatedAt: now.UTC(),
		Status:    StatusOpen,
	}
}

func (t *Task) IsOpen() bool {
	return t.Status == StatusOpen
}

// UpdatePhase records notes for a phase. An empty status means in progress.
func (t *Task) UpdatePhase(phase Phase, notes, status string, now time.Time) error {
	if !phase.IsValid() {
		return ErrInvalidPhase
	}
	if status == "" {
		status = PhaseStatusInProgress
	}
	state, ok := t.Phases[phase]
	if !ok {
		state = &PhaseState{}
		t.Phases[phase] = state
	}
	state.Notes = notes
	state.Timestamp = now.UTC().Format(time.RFC3339)
	state.Status = status
	return nil
}

func (t *Task) Close(result Result, lessons string, now time.Time) {
	closedAt := now.UTC()
	t.Status = StatusClosed
	t.ClosedAt = &closedAt
	t.Result = &result
	t.LessonsLearned = &lessons
}

// IsOverdue reports whether the deadline (YYYY-MM-DD) is before today.
func (t *Task) IsOverdue(today string) bool {
	return t.Deadline != "" && t.Deadline < today
}

func (t *Task) IsCritical() bool {
	return t.Priority == inbox.PriorityP0 || t.Priority == inbox.PriorityP1
}

// Blocker returns the check-phase notes when they mention a blocker or a risk.
func (t *Task) Blocker() (string, bool) {
	state, ok := t.Phases[PhaseCheck]
	if !ok || state == nil || state.Notes == "" {
		return "", false
	}
	lowered := strings.ToLower(state.Notes)
	if strings.Contains(lowered, "блокер") || strings.Contains(lowered, "риск") {
		return state.Notes, true
	}
	return "", false
}

// HasResult reports whether a closed task ended with r.
func (t *Task) HasResult(r Result) bool {
	return t.Result != nil && *t.Result == r
}

func (t *Task) Lessons() string {
	if t.LessonsLearned == nil {
		return ""
	}
	return *t.LessonsLearned
}

// SortByPriority orders tasks P0 first. The sort is stable so equal
// priorities keep their incoming order.
func SortByPriority(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
}

// Open filters tasks down to the open ones.
func Open(tasks []*Task) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.IsOpen() {
			out = append(out, t)
		}
	}
	return out
}

// CreateInput carries the fields a new card is opened with.
type CreateInput struct {
	Title       string
	Description string
	Priority    inbox.Priority
	Assignee    string
	Deadline    string
	Metrics     string
}
