package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inboxassist/internal/domain/email"
	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
)

type stubTasks []*task.Task

func (s stubTasks) All(context.Context) ([]*task.Task, error) { return s, nil }

type stubInbox []*email.Email

func (s stubInbox) Recent(_ context.Context, limit int) ([]*email.Email, error) {
	if len(s) > limit {
		return s[:limit], nil
	}
	return s, nil
}

// Tuesday.
var fixedNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func newService(tasks []*task.Task, mail []*email.Email) *Service {
	var src InboxSource
	if mail != nil {
		src = stubInbox(mail)
	}
	s := NewService(stubTasks(tasks), src)
	s.now = func() time.Time { return fixedNow }
	return s
}

func mkTask(id, title string, p inbox.Priority, created time.Time) *task.Task {
	return task.New(id, title, p, created)
}

func TestWeekStart(t *testing.T) {
	tests := map[string]string{
		"2026-03-09": "2026-03-09",
		"2026-03-10": "2026-03-09",
		"2026-03-15": "2026-03-09",
		"2026-03-16": "2026-03-16",
	}
	for in, want := range tests {
		d, _ := time.Parse(dateLayout, in)
		if got := WeekStart(d).Format(dateLayout); got != want {
			t.Errorf("WeekStart(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestMorningBriefing(t *testing.T) {
	overdue := mkTask("t1", "Бюджет", inbox.PriorityP2, fixedNow)
	overdue.Deadline = "2026-03-01"
	critical := mkTask("t2", "Аудит", inbox.PriorityP0, fixedNow)
	critical.Assignee = "Olga"
	_ = critical.UpdatePhase(task.PhaseCheck, "Риск: поставщик задерживает", "", fixedNow)
	closed := mkTask("t3", "Старое", inbox.PriorityP1, fixedNow)
	closed.Close(task.ResultSuccess, "", fixedNow)

	mail := email.NewEmail("g1", "", "", "прошу утвердить")
	mail.CreatedAt = fixedNow
	mail.ApplyRoute(inbox.Route("прошу утвердить", "Ivan"))

	out, err := newService([]*task.Task{overdue, critical, closed}, []*email.Email{mail}).MorningBriefing(context.Background())
	if err != nil {
		t.Fatalf("MorningBriefing: %v", err)
	}

	for _, want := range []string{
		"# Утренний брифинг — 2026-03-10",
		"**[P2] t1** — Бюджет | дедлайн: 2026-03-01",
		"**[P0] t2** — Аудит | исполнитель: Olga",
		"Открытых задач: **2**  |  Просрочено: **1**",
		"  - P0: 1",
		"[t2] Аудит: Риск: поставщик задерживает",
		"## Последние сообщения",
		"Ivan (decision_needed): прошу утвердить",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("briefing missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Старое") {
		t.Error("closed tasks must not be listed")
	}
}

func TestMorningBriefing_Empty(t *testing.T) {
	out, err := newService(nil, nil).MorningBriefing(context.Background())
	if err != nil {
		t.Fatalf("MorningBriefing: %v", err)
	}
	for _, want := range []string{"Нет просроченных задач.", "Критических задач нет.", "Явных блокеров не выявлено."} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "Последние сообщения") {
		t.Error("no inbox section expected without a source")
	}
}

func TestWeeklyReport(t *testing.T) {
	lastWeek := fixedNow.AddDate(0, 0, -10)

	won := mkTask("t1", "Запуск", inbox.PriorityP1, fixedNow)
	won.Close(task.ResultSuccess, "раньше подключать юристов", fixedNow)
	lost := mkTask("t2", "Миграция", inbox.PriorityP2, lastWeek)
	lost.Close(task.ResultFail, "нет ресурсов", fixedNow)
	old := mkTask("t3", "Прошлое", inbox.PriorityP3, lastWeek)
	old.Close(task.ResultSuccess, "", lastWeek)
	open := mkTask("t4", "Найм", inbox.PriorityP0, lastWeek)

	out, err := newService([]*task.Task{won, lost, old, open}, nil).WeeklyReport(context.Background(), "")
	if err != nil {
		t.Fatalf("WeeklyReport: %v", err)
	}

	for _, want := range []string{
		"# Еженедельный отчёт: 2026-03-09 — 2026-03-15",
		"- Задач создано: **1**",
		"- Задач закрыто: **2**  (выполнено: 1 | не выполнено: 1 | пивот: 0)",
		"- В работе (открыто): **1**",
		"- [P1] **Запуск** (id: t1)",
		"_Выводы: раньше подключать юристов_",
		"- [P2] Миграция: нет ресурсов",
		"- [P0] Найм | дедлайн: — | —",
		"Консервативный прогноз на следующую неделю: 1–3 циклов",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Прошлое") {
		t.Error("tasks closed before the week must not appear")
	}
}

func TestWeeklyReport_ExplicitAndInvalidStart(t *testing.T) {
	s := newService(nil, nil)
	out, err := s.WeeklyReport(context.Background(), "2026-01-05")
	if err != nil {
		t.Fatalf("WeeklyReport: %v", err)
	}
	if !strings.Contains(out, "2026-01-05 — 2026-01-11") {
		t.Errorf("bad header:\n%s", out)
	}

	_, err = s.WeeklyReport(context.Background(), "05.01.2026")
	if !errors.Is(err, ErrInvalidWeekStart) {
		t.Fatalf("err = %v, want ErrInvalidWeekStart", err)
	}
}

func TestDecisionMemo(t *testing.T) {
	s := newService(nil, nil)
	out, err := s.DecisionMemo("Выбор CRM", "300 менеджеров, 3 системы", []string{"Внедрить A", "Оставить как есть"})
	if err != nil {
		t.Fatalf("DecisionMemo: %v", err)
	}
	for _, want := range []string{
		"# Аналитическая записка: Выбор CRM",
		"_Дата: 2026-03-10_",
		"300 менеджеров, 3 системы",
		"1. Внедрить A\n2. Оставить как есть",
		"**Рекомендуемый вариант: Внедрить A**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("memo missing %q", want)
		}
	}

	out, _ = s.DecisionMemo("Тема", "", nil)
	if !strings.Contains(out, "**Рекомендуемый вариант: —**") {
		t.Error("memo without options should recommend —")
	}

	if _, err := s.DecisionMemo("  ", "", nil); !errors.Is(err, ErrNoTopic) {
		t.Errorf("err = %v, want ErrNoTopic", err)
	}
}
