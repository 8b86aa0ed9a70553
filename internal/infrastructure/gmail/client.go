package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/gmail/v1"

	"inboxassist/internal/domain/email"
	"inboxassist/internal/infrastructure/logger"
)

const user = "me"

// Client implements Gmail operations (adapter)
type Client struct {
	Srv *gmail.Service
	l   logger.Logger

	mu       sync.RWMutex
	labelIDs map[string]string
}

// NewClient creates a new Gmail client
func NewClient(srv *gmail.Service, l logger.Logger) *Client {
	return &Client{
		Srv:      srv,
		l:        l,
		labelIDs: make(map[string]string),
	}
}

// labelNames maps domain labels to Gmail label names
var labelNames = map[email.Label]string{
	email.LabelDecisionNeeded: "Inbox/Decision Needed",
	email.LabelDelegate:       "Inbox/Delegate",
	email.LabelInfoOnly:       "Inbox/Info Only",
	email.LabelControlCheck:   "Inbox/Control Check",
}

// InitLabels loads the mailbox labels and creates the routing labels that
// are missing.
func (c *Client) InitLabels(ctx context.Context) error {
	list, err := c.Srv.Users.Labels.List(user).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("list labels: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range list.Labels {
		c.labelIDs[l.Name] = l.Id
	}

	for _, name := range labelNames {
		if _, ok := c.labelIDs[name]; ok {
			continue
		}

		created, err := c.Srv.Users.Labels.Create(user, &gmail.Label{Name: name}).Context(ctx).Do()
		if err != nil {
			if strings.Contains(err.Error(), "Label name exists or conflicts") {
				c.l.Warnf(ctx, "Label %q already exists (409 conflict), continuing", name)
				continue
			}
			return fmt.Errorf("create label %q: %w", name, err)
		}

		c.labelIDs[name] = created.Id
	}

	return nil
}

func (c *Client) FetchEmail(ctx context.Context, messageID string) (*email.Email, error) {
	msg, err := c.Srv.Users.Messages.Get(user, messageID).Format("FULL").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail get message: %w", err)
	}

	return email.NewEmail(
		messageID,
		extractHeader(msg, "From"),
		extractHeader(msg, "Subject"),
		extractBody(msg),
	), nil
}

func (c *Client) ApplyLabel(ctx context.Context, messageID string, label email.Label) error {
	name := labelNames[label]

	c.mu.RLock()
	labelID := c.labelIDs[name]
	c.mu.RUnlock()

	if labelID == "" {
		return fmt.Errorf("label ID not found for %q", name)
	}

	_, err := c.Srv.Users.Messages.Modify(user, messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail modify message: %w", err)
	}
	return nil
}

func (c *Client) CreateDraft(ctx context.Context, recipient, subject, body string) error {
	_, err := c.Srv.Users.Drafts.Create(user, &gmail.Draft{
		Message: &gmail.Message{
			Raw: encodeDraft(recipient, subject, body),
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail create draft: %w", err)
	}
	return nil
}

// encodeDraft builds a minimal RFC 2822 message. Subject and body are UTF-8.
func encodeDraft(recipient, subject, body string) string {
	raw := fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		recipient, encodeHeader(subject), body,
	)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// historyAttempts bounds the retries while Gmail catches up on history writes.
const historyAttempts = 5

// FetchNewMessagesSince lists messages added after historyID, skipping drafts.
// Gmail writes history asynchronously, so an empty page is retried briefly.
func (c *Client) FetchNewMessagesSince(ctx context.Context, historyID uint64) ([]string, error) {
	for attempt := 1; attempt <= historyAttempts; attempt++ {
		resp, err := c.Srv.Users.History.List(user).
			StartHistoryId(historyID).
			HistoryTypes("messageAdded").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("gmail history list: %w", err)
		}

		if len(resp.History) > 0 {
			return extractMessageIDs(resp.History), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt*80) * time.Millisecond):
		}
	}

	return nil, nil
}

// EnableWatch enables Gmail push notifications
func (c *Client) EnableWatch(ctx context.Context, topicName string) error {
	resp, err := c.Srv.Users.Watch(user, &gmail.WatchRequest{
		TopicName: topicName,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail watch: %w", err)
	}

	c.l.Infof(ctx, "Watch enabled, expires at %s",
		time.UnixMilli(resp.Expiration).UTC().Format(time.RFC3339))
	return nil
}

func (c *Client) ListMessagesFromInbox(ctx context.Context, maxResults int64) ([]string, error) {
	resp, err := c.Srv.Users.Messages.List(user).
		LabelIds("INBOX").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}
