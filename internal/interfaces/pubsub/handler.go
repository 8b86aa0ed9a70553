package pubsub

import (
	"context"

	"inboxassist/internal/infrastructure/logger"
	"inboxassist/internal/interfaces/worker"
)

type HistoryFetcher interface {
	FetchNewMessagesSince(ctx context.Context, historyID uint64) ([]string, error)
}

// JobSubmitter is implemented by worker.Pool.
type JobSubmitter interface {
	Submit(ctx context.Context, job worker.EmailJob) error
}

type Handler struct {
	l            logger.Logger
	pool         JobSubmitter
	gmailFetcher HistoryFetcher
}

func NewHandler(l logger.Logger, pool JobSubmitter, gmailFetcher HistoryFetcher) *Handler {
	return &Handler{
		l:            l,
		pool:         pool,
		gmailFetcher: gmailFetcher,
	}
}

func (h *Handler) HandleNotification(ctx context.Context, historyID uint64) {
	messageIDs, err := h.gmailFetcher.FetchNewMessagesSince(ctx, historyID)
	if err != nil {
		h.l.Errorf(ctx, "Fetch history error: %v", err)
		return
	}

	if len(messageIDs) == 0 {
		h.l.Debugf(ctx, "No new messages in historyID: %d", historyID)
		return
	}

	h.l.Infof(ctx, "Found %d new message(s) in historyID: %d", len(messageIDs), historyID)

	for _, msgID := range messageIDs {
		if err := h.pool.Submit(ctx, worker.EmailJob{GmailID: msgID}); err != nil {
			h.l.Warnf(ctx, "Submit %s: %v", msgID, err)
			return
		}
	}
}
