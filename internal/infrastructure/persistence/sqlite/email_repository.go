package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inboxassist/internal/domain/email"
	"inboxassist/internal/domain/inbox"
)

type EmailRepository struct {
	db *sql.DB
}

func NewEmailRepository(db *sql.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

func (r *EmailRepository) GetById(ctx context.Context, gmailID string) (*email.Email, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT gmail_id, from_addr, sender, subject, body, category, priority,
		        recommended_action, draft, created_at
		 FROM emails WHERE gmail_id = ?`,
		gmailID,
	)

	e, err := scanEmail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", email.ErrEmailNotFound, gmailID)
	}
	if err != nil {
		return nil, fmt.Errorf("query email: %w", err)
	}
	return e, nil
}

func (r *EmailRepository) Save(ctx context.Context, e *email.Email) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO emails
         (gmail_id, from_addr, sender, subject, body, category, priority,
          recommended_action, draft, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.GmailID, e.From, e.Route.Sender, e.Subject, e.Body,
		string(e.Route.Classification), string(e.Route.Priority),
		e.Route.RecommendedAction, e.Route.DraftResponse, e.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save email: %w", err)
	}
	return nil
}

func (r *EmailRepository) EmailAlreadyProcessed(ctx context.Context, gmailID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM emails WHERE gmail_id = ? LIMIT 1`,
		gmailID,
	).Scan(&exists)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check processed: %w", err)
	}
	return true, nil
}

// Recent returns the newest routed emails, newest first.
func (r *EmailRepository) Recent(ctx context.Context, limit int) ([]*email.Email, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT gmail_id, from_addr, sender, subject, body, category, priority,
		        recommended_action, draft, created_at
		 FROM emails ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent emails: %w", err)
	}
	defer rows.Close()

	var out []*email.Email
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmail(s scanner) (*email.Email, error) {
	var (
		e                                 email.Email
		from, sender, subject, body       sql.NullString
		category, priority, action, draft sql.NullString
		createdAt                         sql.NullInt64
	)
	if err := s.Scan(&e.GmailID, &from, &sender, &subject, &body,
		&category, &priority, &action, &draft, &createdAt); err != nil {
		return nil, err
	}

	e.From = from.String
	e.Subject = subject.String
	e.Body = body.String
	e.CreatedAt = time.Unix(createdAt.Int64, 0)
	e.Route = inbox.Result{
		Classification:    inbox.Category(category.String),
		Priority:          inbox.Priority(priority.String),
		Sender:            sender.String,
		RecommendedAction: action.String,
		DraftResponse:     draft.String,
		MessagePreview:    inbox.Preview(e.Text(), inbox.PreviewLength),
	}
	return &e, nil
}
