package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
)

const recentInboxLimit = 5

// MorningBriefing summarises overdue and critical work, per-priority
// counts, blockers and the latest routed mail.
func (s *Service) MorningBriefing(ctx context.Context) (string, error) {
	now := s.now().UTC()
	today := now.Format(dateLayout)

	all, err := s.tasks.All(ctx)
	if err != nil {
		return "", fmt.Errorf("load tasks: %w", err)
	}
	open := task.Open(all)
	task.SortByPriority(open)

	var overdue, critical []*task.Task
	byPriority := map[inbox.Priority]int{}
	for _, t := range open {
		if t.IsOverdue(today) {
			overdue = append(overdue, t)
		}
		if t.IsCritical() {
			critical = append(critical, t)
		}
		byPriority[t.Priority]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Утренний брифинг — %s\n", today)
	fmt.Fprintf(&b, "_Сгенерировано: %s_\n\n", now.Format(time.RFC3339))

	b.WriteString("## Просроченные / критические задачи\n")
	if len(overdue) == 0 {
		b.WriteString("- Нет просроченных задач.\n")
	}
	for _, t := range overdue {
		fmt.Fprintf(&b, "- **[%s] %s** — %s | дедлайн: %s | исполнитель: %s\n",
			t.Priority, t.ID, t.Title, t.Deadline, dash(t.Assignee))
	}

	b.WriteString("\n## Приоритеты на сегодня (P0–P1)\n")
	if len(critical) == 0 {
		b.WriteString("- Критических задач нет.\n")
	}
	for _, t := range critical {
		fmt.Fprintf(&b, "- **[%s] %s** — %s | исполнитель: %s\n",
			t.Priority, t.ID, t.Title, dash(t.Assignee))
	}

	b.WriteString("\n## Метрики\n")
	fmt.Fprintf(&b, "- Открытых задач: **%d**  |  Просрочено: **%d**\n", len(open), len(overdue))
	for _, p := range []inbox.Priority{inbox.PriorityP0, inbox.PriorityP1, inbox.PriorityP2, inbox.PriorityP3} {
		if n, ok := byPriority[p]; ok {
			fmt.Fprintf(&b, "  - %s: %d\n", p, n)
		}
	}

	b.WriteString("\n## Риски и блокеры\n")
	blockers := 0
	for _, t := range open {
		if notes, ok := t.Blocker(); ok {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", t.ID, t.Title, inbox.Preview(notes, 100))
			blockers++
		}
	}
	if blockers == 0 {
		b.WriteString("- Явных блокеров не выявлено.\n")
	}

	if s.inbox != nil {
		recent, err := s.inbox.Recent(ctx, recentInboxLimit)
		if err != nil {
			return "", fmt.Errorf("load recent inbox: %w", err)
		}
		if len(recent) > 0 {
			b.WriteString("\n## Последние сообщения\n```\n")
			for _, e := range recent {
				fmt.Fprintf(&b, "  [%s] %s (%s): %s\n",
					e.CreatedAt.UTC().Format("2006-01-02T15:04"),
					e.Route.Sender, e.Route.Classification,
					inbox.Preview(e.Route.MessagePreview, 120))
			}
			b.WriteString("```\n")
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
