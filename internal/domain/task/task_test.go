package task

import (
	"errors"
	"testing"
	"time"

	"inboxassist/internal/domain/inbox"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func TestNew_AllPhasesPending(t *testing.T) {
	tk := New("abcd1234", "Бюджет", inbox.PriorityP1, now)
	if !tk.IsOpen() {
		t.Fatal("new task must be open")
	}
	for _, p := range Phases {
		state, ok := tk.Phases[p]
		if !ok || state.Status != PhaseStatusPending {
			t.Errorf("phase %s = %+v, want pending", p, state)
		}
	}
}

func TestUpdatePhase(t *testing.T) {
	tk := New("abcd1234", "x", inbox.PriorityP2, now)

	if err := tk.UpdatePhase(PhaseDo, "started", "", now); err != nil {
		t.Fatalf("UpdatePhase: %v", err)
	}
	if got := tk.Phases[PhaseDo]; got.Status != PhaseStatusInProgress || got.Notes != "started" {
		t.Errorf("do phase = %+v", got)
	}
	if tk.Phases[PhaseDo].Timestamp != "2026-03-10T09:30:00Z" {
		t.Errorf("timestamp = %q", tk.Phases[PhaseDo].Timestamp)
	}

	err := tk.UpdatePhase(Phase("review"), "", "", now)
	if !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("err = %v, want ErrInvalidPhase", err)
	}
}

func TestClose(t *testing.T) {
	tk := New("abcd1234", "x", inbox.PriorityP2, now)
	tk.Close(ResultPivot, "сменили подход", now)

	if tk.IsOpen() || tk.ClosedAt == nil {
		t.Fatal("task should be closed with a timestamp")
	}
	if !tk.HasResult(ResultPivot) || tk.HasResult(ResultSuccess) {
		t.Error("result not recorded")
	}
	if tk.Lessons() != "сменили подход" {
		t.Errorf("lessons = %q", tk.Lessons())
	}
}

func TestBlocker(t *testing.T) {
	tk := New("abcd1234", "x", inbox.PriorityP2, now)
	if _, ok := tk.Blocker(); ok {
		t.Fatal("empty notes should not be a blocker")
	}
	_ = tk.UpdatePhase(PhaseCheck, "Есть РИСК срыва сроков", "", now)
	if notes, ok := tk.Blocker(); !ok || notes == "" {
		t.Fatal("risk note should be reported")
	}
}

func TestIsOverdue(t *testing.T) {
	tk := New("abcd1234", "x", inbox.PriorityP2, now)
	if tk.IsOverdue("2026-03-10") {
		t.Error("no deadline is never overdue")
	}
	tk.Deadline = "2026-03-09"
	if !tk.IsOverdue("2026-03-10") {
		t.Error("yesterday's deadline should be overdue")
	}
	if tk.IsOverdue("2026-03-09") {
		t.Error("today's deadline is not overdue yet")
	}
}

func TestSortByPriority(t *testing.T) {
	tasks := []*Task{
		New("a", "a", inbox.PriorityP3, now),
		New("b", "b", inbox.PriorityP0, now),
		New("c", "c", inbox.PriorityP2, now),
		New("d", "d", inbox.PriorityP0, now),
	}
	SortByPriority(tasks)

	want := []string{"b", "d", "c", "a"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, tasks[i].ID, id)
		}
	}
}

func TestOpen(t *testing.T) {
	a := New("a", "a", inbox.PriorityP3, now)
	b := New("b", "b", inbox.PriorityP3, now)
	b.Close(ResultSuccess, "", now)

	open := Open([]*Task{a, b})
	if len(open) != 1 || open[0].ID != "a" {
		t.Fatalf("Open() = %v", open)
	}
}
