// Package report renders Markdown briefings from the task tracker and the
// routed inbox.
package report

import (
	"context"
	"errors"
	"time"

	"inboxassist/internal/domain/email"
	"inboxassist/internal/domain/task"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidWeekStart = errors.New("invalid week_start: want YYYY-MM-DD")
	ErrNoTopic          = errors.New("decision memo needs a topic")
)

type TaskSource interface {
	All(ctx context.Context) ([]*task.Task, error)
}

// InboxSource provides the most recently routed messages. Optional.
type InboxSource interface {
	Recent(ctx context.Context, limit int) ([]*email.Email, error)
}

type Service struct {
	tasks TaskSource
	inbox InboxSource
	now   func() time.Time
}

func NewService(tasks TaskSource, inbox InboxSource) *Service {
	return &Service{
		tasks: tasks,
		inbox: inbox,
		now:   time.Now,
	}
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func dateOf(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
