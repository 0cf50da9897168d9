package sse

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/notify"
)

var _ notify.Notifier = (*Hub)(nil)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub(nil)
	a := hub.Subscribe("a")
	b := hub.Subscribe("b")

	hub.Publish(models.Notification{ID: "n1", Title: "库存预警", Type: models.NotificationWarning})

	for _, s := range []*Subscriber{a, b} {
		require.Len(t, s.Events, 1)
		var ev NotificationEvent
		require.NoError(t, json.Unmarshal(<-s.Events, &ev))
		assert.Equal(t, EventNotificationCreated, ev.Event)
		assert.Equal(t, "n1", ev.Notification.ID)
	}
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	m := metrics.New()
	hub := NewHub(m)

	hub.Publish(models.Notification{ID: "n1"})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.NotificationsPublished.WithLabelValues(sinkSSE, "success")))
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub(nil)
	a := hub.Subscribe("a")
	hub.Subscribe("b")
	require.Equal(t, 2, hub.Len())

	hub.Unsubscribe(a)
	hub.Unsubscribe(a)

	assert.Equal(t, 1, hub.Len())
	_, open := <-a.Events
	assert.False(t, open)
}

func TestHub_ResubscribeClosesPreviousStream(t *testing.T) {
	hub := NewHub(nil)
	first := hub.Subscribe("a")
	second := hub.Subscribe("a")

	_, open := <-first.Events
	assert.False(t, open)
	assert.Equal(t, 1, hub.Len())

	hub.Unsubscribe(first)
	assert.Equal(t, 1, hub.Len())
	hub.Unsubscribe(second)
	assert.Equal(t, 0, hub.Len())
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	m := metrics.New()
	hub := NewHub(m)
	s := hub.Subscribe("slow")

	for i := 0; i < subscriberBuffer+3; i++ {
		hub.Publish(models.Notification{ID: "n"})
	}

	assert.Len(t, s.Events, subscriberBuffer)
	assert.Equal(t, float64(subscriberBuffer), testutil.ToFloat64(m.NotificationsPublished.WithLabelValues(sinkSSE, "success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.NotificationsPublished.WithLabelValues(sinkSSE, "failure")))
}
