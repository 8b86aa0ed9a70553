package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"inboxassist/internal/domain/task"
)

// TaskRepository keeps each PDCA card as a JSON document keyed by id, with
// the columns needed for filtering pulled out alongside it.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	card, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", t.ID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pdca_tasks (id, title, priority, status, created_at, card)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     title = excluded.title,
		     priority = excluded.priority,
		     status = excluded.status,
		     card = excluded.card`,
		t.ID, t.Title, string(t.Priority), string(t.Status), t.CreatedAt.Unix(), string(card),
	)
	if err != nil {
		return fmt.Errorf("save task %s: %w", t.ID, err)
	}
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	var card string
	err := r.db.QueryRowContext(ctx, `SELECT card FROM pdca_tasks WHERE id = ?`, id).Scan(&card)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query task %s: %w", id, err)
	}
	return decodeTask(card)
}

// List returns every task ordered by id. Cards that fail to decode are skipped.
func (r *TaskRepository) List(ctx context.Context) ([]*task.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT card FROM pdca_tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []*task.Task
	for rows.Next() {
		var card string
		if err := rows.Scan(&card); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t, err := decodeTask(card)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func decodeTask(card string) (*task.Task, error) {
	var t task.Task
	if err := json.Unmarshal([]byte(card), &t); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &t, nil
}
