package email

import (
	"context"
	"fmt"

	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
	"inboxassist/internal/infrastructure/logger"
)

type RouteEmailUseCase struct {
	l            logger.Logger
	repo         EmailRepository
	gmailService GmailService
	route        Router
	polisher     DraftPolisher
	tasks        TaskOpener
}

func NewRouteEmailUseCase(
	l logger.Logger,
	repo EmailRepository,
	gmailService GmailService,
) *RouteEmailUseCase {
	return &RouteEmailUseCase{
		l:            l,
		repo:         repo,
		gmailService: gmailService,
		route:        inbox.Route,
	}
}

// SetPolisher enables LLM rewriting of reply drafts. Nil disables it.
func (uc *RouteEmailUseCase) SetPolisher(p DraftPolisher) { uc.polisher = p }

// SetTaskOpener enables opening PDCA tasks for decision and delegation mail.
func (uc *RouteEmailUseCase) SetTaskOpener(t TaskOpener) { uc.tasks = t }

func (uc *RouteEmailUseCase) Execute(ctx context.Context, gmailID string) error {
	processed, err := uc.repo.EmailAlreadyProcessed(ctx, gmailID)
	if err != nil {
		return fmt.Errorf("check processed: %w", err)
	}
	if processed {
		uc.l.Debugf(ctx, "Email %s already processed, skipping", gmailID)
		return nil
	}

	emailEntity, err := uc.gmailService.FetchEmail(ctx, gmailID)
	if err != nil {
		return fmt.Errorf("fetch email: %w", err)
	}

	if emailEntity.Body == "" {
		uc.l.Infof(ctx, "Empty body for %s, skipping", gmailID)
		return nil
	}

	emailEntity.ApplyRoute(uc.route(emailEntity.Text(), emailEntity.SenderName()))

	if err := uc.gmailService.ApplyLabel(ctx, gmailID, emailEntity.Label()); err != nil {
		uc.l.Warnf(ctx, "Failed to apply label for %s: %v", gmailID, err)
	}

	if emailEntity.NeedsReply() {
		body := uc.draftBody(ctx, emailEntity.Route.DraftResponse, emailEntity.Text())
		if err := uc.gmailService.CreateDraft(ctx, emailEntity.From, "Re: "+emailEntity.Subject, body); err != nil {
			uc.l.Warnf(ctx, "Failed to create draft for %s: %v", gmailID, err)
		}
	}

	if uc.tasks != nil && emailEntity.NeedsTask() {
		uc.openTask(ctx, emailEntity.GmailID, emailEntity.Subject, emailEntity.Route)
	}

	if err := uc.repo.Save(ctx, emailEntity); err != nil {
		return fmt.Errorf("save email: %w", err)
	}

	uc.l.Infof(ctx, "OK: %s – category=%s priority=%s",
		gmailID, emailEntity.Route.Classification, emailEntity.Route.Priority)
	return nil
}

// draftBody returns the polished draft, or the template when polishing is
// off or fails.
func (uc *RouteEmailUseCase) draftBody(ctx context.Context, draft, original string) string {
	if uc.polisher == nil {
		return draft
	}
	polished, err := uc.polisher.Polish(ctx, draft, original)
	if err != nil || polished == "" {
		uc.l.Warnf(ctx, "Draft polishing failed, using template: %v", err)
		return draft
	}
	return polished
}

func (uc *RouteEmailUseCase) openTask(ctx context.Context, gmailID, subject string, r inbox.Result) {
	title := subject
	if title == "" {
		title = inbox.Preview(r.MessagePreview, 80)
	}
	t, err := uc.tasks.Create(ctx, task.CreateInput{
		Title:       title,
		Description: fmt.Sprintf("%s\n\nОт: %s (gmail id %s)", r.RecommendedAction, r.Sender, gmailID),
		Priority:    r.Priority,
		Assignee:    "",
	})
	if err != nil {
		uc.l.Warnf(ctx, "Failed to open task for %s: %v", gmailID, err)
		return
	}
	uc.l.Infof(ctx, "Opened task %s for %s", t.ID, gmailID)
}
