// Package task implements the PDCA task tracker use cases.
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
	"inboxassist/internal/infrastructure/logger"
)

type UseCase struct {
	l     logger.Logger
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewUseCase(l logger.Logger, repo Repository) *UseCase {
	return &UseCase{
		l:     l,
		repo:  repo,
		now:   time.Now,
		newID: shortID,
	}
}

// shortID is the first 8 hex characters of a random UUID.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (uc *UseCase) Create(ctx context.Context, in task.CreateInput) (*task.Task, error) {
	if in.Priority == "" {
		in.Priority = inbox.PriorityP2
	}
	if !in.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", task.ErrInvalidPriority, in.Priority)
	}

	t := task.New(uc.newID(), in.Title, in.Priority, uc.now())
	t.Description = in.Description
	t.Assignee = in.Assignee
	t.Deadline = in.Deadline
	t.Metrics = in.Metrics

	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	uc.l.Infof(ctx, "Task %s created priority=%s", t.ID, t.Priority)
	return t, nil
}

// UpdateInput changes either one phase (when Phase is set) or the overall
// task status.
type UpdateInput struct {
	ID     string
	Phase  string
	Notes  string
	Status string
}

func (uc *UseCase) Update(ctx context.Context, in UpdateInput) (*task.Task, error) {
	t, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case in.Phase != "":
		if err := t.UpdatePhase(task.Phase(in.Phase), in.Notes, in.Status, uc.now()); err != nil {
			return nil, fmt.Errorf("%w: %q", err, in.Phase)
		}
	case in.Status != "":
		t.Status = task.Status(in.Status)
	}

	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*task.Task, error) {
	return uc.repo.Get(ctx, id)
}

// ListOpen returns open tasks, most urgent first.
func (uc *UseCase) ListOpen(ctx context.Context) ([]*task.Task, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	open := task.Open(all)
	task.SortByPriority(open)
	return open, nil
}

// All returns every task the repository holds.
func (uc *UseCase) All(ctx context.Context) ([]*task.Task, error) {
	return uc.repo.List(ctx)
}

func (uc *UseCase) Close(ctx context.Context, id string, result task.Result, lessons string) (*task.Task, error) {
	if !result.IsValid() {
		return nil, fmt.Errorf("%w: %q", task.ErrInvalidResult, result)
	}
	t, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Close(result, lessons, uc.now())
	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	uc.l.Infof(ctx, "Task %s closed result=%s", t.ID, result)
	return t, nil
}
