package task

import (
	"context"

	"inboxassist/internal/domain/task"
)

type Repository interface {
	Save(ctx context.Context, t *task.Task) error
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context) ([]*task.Task, error)
}
