package email

import (
	"context"

	"inboxassist/internal/domain/email"
	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
)

type EmailRepository interface {
	GetById(ctx context.Context, gmailID string) (*email.Email, error)
	Save(ctx context.Context, e *email.Email) error
	EmailAlreadyProcessed(ctx context.Context, gmailID string) (bool, error)
}

type GmailService interface {
	FetchEmail(ctx context.Context, messageID string) (*email.Email, error)
	ApplyLabel(ctx context.Context, messageID string, label email.Label) error
	CreateDraft(ctx context.Context, recipient, subject, body string) error
}

// DraftPolisher rewrites a templated reply. Implementations must keep the
// meaning and language of the draft.
type DraftPolisher interface {
	Polish(ctx context.Context, draft, original string) (string, error)
}

// TaskOpener opens a PDCA task for a routed email.
type TaskOpener interface {
	Create(ctx context.Context, in task.CreateInput) (*task.Task, error)
}

// Router is the classify-then-draft step. inbox.Route satisfies it.
type Router func(message, sender string) inbox.Result
