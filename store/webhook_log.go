package store

import (
	"sync"
	"time"

	"github.com/memoflow/noted/common"
)

// WebhookLogSize is how many recent deliveries the log retains.
const WebhookLogSize = 20

// WebhookDelivery records one accepted webhook payload.
type WebhookDelivery struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	Tags       []string  `json:"tags"`
	ReceivedAt time.Time `json:"received_at"`
}

// WebhookLog is a bounded, in-memory record of recent webhook deliveries.
// Older entries are discarded once the log is full.
type WebhookLog struct {
	mu      sync.Mutex
	entries []*WebhookDelivery
}

func NewWebhookLog() *WebhookLog {
	return &WebhookLog{}
}

func (l *WebhookLog) Record(source, message string, tags []string) *WebhookDelivery {
	delivery := &WebhookDelivery{
		ID:         common.GenUUID(),
		Source:     source,
		Message:    message,
		Tags:       cloneTags(tags),
		ReceivedAt: time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, delivery)
	if len(l.entries) > WebhookLogSize {
		l.entries = l.entries[len(l.entries)-WebhookLogSize:]
	}
	return delivery
}

// List returns deliveries oldest first.
func (l *WebhookLog) List() []*WebhookDelivery {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := make([]*WebhookDelivery, len(l.entries))
	copy(list, l.entries)
	return list
}
