package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaNotifier_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaNotifier{writer: w}
	ts := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	p.Publish(models.Notification{ID: "n1", Title: "数据已导入", Message: "全部数据已从快照恢复", Type: models.NotificationSuccess, Timestamp: ts})

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("n1"), w.msgs[0].Key)
	assert.Equal(t, ts, w.msgs[0].Time)

	var ev NotificationEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "dashboard.notification.created", ev.EventType)
	assert.Equal(t, "数据已导入", ev.Title)
	assert.Equal(t, models.NotificationSuccess, ev.Severity)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_WriteErrorIsSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &KafkaNotifier{writer: w}

	assert.NotPanics(t, func() {
		p.Publish(models.Notification{ID: "n1"})
	})
}
