package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inboxassist/internal/domain/task"
)

const nextWeekLimit = 5

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeeklyReport compares the plan with the fact for the week beginning at
// weekStart (YYYY-MM-DD). An empty weekStart means the current week.
func (s *Service) WeeklyReport(ctx context.Context, weekStart string) (string, error) {
	now := s.now().UTC()

	var ws time.Time
	if weekStart == "" {
		ws = WeekStart(now)
	} else {
		parsed, err := time.Parse(dateLayout, weekStart)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidWeekStart, weekStart)
		}
		ws = parsed
	}
	start := ws.Format(dateLayout)
	end := ws.AddDate(0, 0, 6).Format(dateLayout)

	all, err := s.tasks.All(ctx)
	if err != nil {
		return "", fmt.Errorf("load tasks: %w", err)
	}

	var created, closed, succeeded, failed, pivoted []*task.Task
	for _, t := range all {
		if dateOf(t.CreatedAt) >= start {
			created = append(created, t)
		}
		if t.Status == task.StatusClosed && t.ClosedAt != nil && dateOf(*t.ClosedAt) >= start {
			closed = append(closed, t)
			switch {
			case t.HasResult(task.ResultSuccess):
				succeeded = append(succeeded, t)
			case t.HasResult(task.ResultFail):
				failed = append(failed, t)
			case t.HasResult(task.ResultPivot):
				pivoted = append(pivoted, t)
			}
		}
	}
	open := task.Open(all)
	task.SortByPriority(open)

	var b strings.Builder
	fmt.Fprintf(&b, "# Еженедельный отчёт: %s — %s\n", start, end)
	fmt.Fprintf(&b, "_Сгенерировано: %s_\n\n", now.Format(time.RFC3339))

	b.WriteString("## Факт / план\n")
	fmt.Fprintf(&b, "- Задач создано: **%d**\n", len(created))
	fmt.Fprintf(&b, "- Задач закрыто: **%d**  (выполнено: %d | не выполнено: %d | пивот: %d)\n",
		len(closed), len(succeeded), len(failed), len(pivoted))
	fmt.Fprintf(&b, "- В работе (открыто): **%d**\n", len(open))

	b.WriteString("\n## Ключевые достижения\n")
	if len(succeeded) == 0 {
		b.WriteString("- Успешно закрытых задач за неделю нет.\n")
	}
	for _, t := range succeeded {
		fmt.Fprintf(&b, "- [%s] **%s** (id: %s)\n", t.Priority, t.Title, t.ID)
		if lessons := t.Lessons(); lessons != "" {
			fmt.Fprintf(&b, "  _Выводы: %s_\n", lessons)
		}
	}

	b.WriteString("\n## Блокеры и проблемы\n")
	if len(failed) == 0 {
		b.WriteString("- Критических блокеров не зафиксировано.\n")
	}
	for _, t := range failed {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", t.Priority, t.Title, dash(t.Lessons()))
	}

	b.WriteString("\n## Приоритеты следующей недели\n")
	next := open
	if len(next) > nextWeekLimit {
		next = next[:nextWeekLimit]
	}
	if len(next) == 0 {
		b.WriteString("- Открытых задач нет.\n")
	}
	for _, t := range next {
		fmt.Fprintf(&b, "- [%s] %s | дедлайн: %s | %s\n", t.Priority, t.Title, dash(t.Deadline), dash(t.Assignee))
	}

	lo := max(1, len(closed)-1)
	hi := len(closed) + 1
	b.WriteString("\n## PDCA-циклы\n")
	fmt.Fprintf(&b, "- Завершено за неделю: **%d**\n", len(closed))
	fmt.Fprintf(&b, "- Консервативный прогноз на следующую неделю: %d–%d циклов", lo, hi)

	return b.String(), nil
}
