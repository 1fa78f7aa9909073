package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWebhookLogRecord(t *testing.T) {
	log := NewWebhookLog()

	delivery := log.Record("ci", "Deployment succeeded", []string{"deploy"})
	require.NotEmpty(t, delivery.ID)
	require.Equal(t, "ci", delivery.Source)
	require.Equal(t, "Deployment succeeded", delivery.Message)
	require.Equal(t, []string{"deploy"}, delivery.Tags)
	require.False(t, delivery.ReceivedAt.IsZero())

	list := log.List()
	require.Len(t, list, 1)
	require.Equal(t, delivery.ID, list[0].ID)
}

func TestWebhookLogBounded(t *testing.T) {
	log := NewWebhookLog()

	for i := 0; i < WebhookLogSize+5; i++ {
		log.Record("svc", fmt.Sprintf("event %d", i), nil)
	}

	list := log.List()
	require.Len(t, list, WebhookLogSize)
	// The oldest entries are dropped.
	require.Equal(t, "event 5", list[0].Message)
	require.Equal(t, fmt.Sprintf("event %d", WebhookLogSize+4), list[len(list)-1].Message)
}
