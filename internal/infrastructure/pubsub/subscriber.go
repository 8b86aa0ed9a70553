package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"inboxassist/internal/infrastructure/logger"
)

// seenTTL covers Pub/Sub redelivery windows; older history IDs are forgotten.
const seenTTL = time.Hour

// Notification represents Gmail Pub/Sub notification
type Notification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// Subscriber handles Pub/Sub messages
type Subscriber struct {
	client         *pubsub.Client
	subscriptionID string
	l              logger.Logger
	seen           *dedup
}

// NewSubscriber creates a new Pub/Sub subscriber
func NewSubscriber(ctx context.Context, l logger.Logger, projectID, subscriptionID string, dedupSize int) (*Subscriber, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &Subscriber{
		client:         client,
		subscriptionID: subscriptionID,
		l:              l,
		seen:           newDedup(dedupSize, seenTTL),
	}, nil
}

// Listen blocks until ctx is done. Every message is acked; handler runs at
// most once per history ID while the ID is remembered.
func (s *Subscriber) Listen(ctx context.Context, handler func(ctx context.Context, historyID uint64)) error {
	sub := s.client.Subscription(s.subscriptionID)

	s.l.Info(ctx, "Pub/Sub listener started")

	return sub.Receive(ctx, func(mctx context.Context, m *pubsub.Message) {
		defer m.Ack()

		notification, err := parseNotification(m.Data)
		if err != nil {
			s.l.Warnf(mctx, "Parse notification error: %v", err)
			return
		}

		if !s.seen.first(notification.HistoryID) {
			s.l.Debugf(mctx, "Duplicate historyID %d, skipping", notification.HistoryID)
			return
		}

		s.l.Infof(mctx, "New notification - %s (historyID: %d)", notification.EmailAddress, notification.HistoryID)
		handler(mctx, notification.HistoryID)
	})
}

// Close closes the Pub/Sub client
func (s *Subscriber) Close() error {
	return s.client.Close()
}

func parseNotification(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	if n.HistoryID == 0 {
		return nil, fmt.Errorf("notification without historyId")
	}
	return &n, nil
}

// dedup remembers recent history IDs. Receive runs callbacks concurrently,
// so check-and-record happens under mu.
type dedup struct {
	mu    sync.Mutex
	cache *expirable.LRU[uint64, struct{}]
}

func newDedup(size int, ttl time.Duration) *dedup {
	if size <= 0 {
		size = 1000
	}
	return &dedup{cache: expirable.NewLRU[uint64, struct{}](size, nil, ttl)}
}

// first reports whether id is seen for the first time and records it.
func (d *dedup) first(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cache.Contains(id) {
		return false
	}
	d.cache.Add(id, struct{}{})
	return true
}
