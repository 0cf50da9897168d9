package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

type recorder struct {
	mu   sync.Mutex
	seen []models.Notification
}

func (r *recorder) Publish(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func sequentialIDs() func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("n%d", i)
	}
}

func TestLog_AppendIsNewestFirst(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	l := NewLog(WithIDGenerator(sequentialIDs()), WithClock(func() time.Time { return now }))

	l.Append("a", "first", models.NotificationInfo)
	l.Append("b", "second", models.NotificationSuccess)
	l.Append("c", "third", models.NotificationWarning)

	list := l.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{list[0].Message, list[1].Message, list[2].Message})
	assert.Equal(t, "n3", list[0].ID)
	assert.Equal(t, now, list[0].Timestamp)
	assert.False(t, list[0].Read)
	assert.Equal(t, 3, l.Unread())
}

func TestLog_MarkReadIsIdempotent(t *testing.T) {
	l := NewLog(WithIDGenerator(sequentialIDs()))
	l.Append("a", "x", models.NotificationInfo)
	l.Append("b", "y", models.NotificationInfo)

	assert.True(t, l.MarkRead("n1"))
	assert.True(t, l.MarkRead("n1"))
	assert.False(t, l.MarkRead("missing"))

	assert.Equal(t, 1, l.Unread())
	list := l.List()
	assert.False(t, list[0].Read)
	assert.True(t, list[1].Read)
}

func TestLog_ClearAll(t *testing.T) {
	l := NewLog()
	l.Append("a", "x", models.NotificationInfo)

	l.ClearAll()
	assert.Empty(t, l.List())

	l.ClearAll()
	assert.Empty(t, l.List())
	assert.Equal(t, 0, l.Unread())
}

func TestLog_ListIsACopy(t *testing.T) {
	l := NewLog()
	l.Append("a", "x", models.NotificationInfo)

	list := l.List()
	list[0].Read = true

	assert.Equal(t, 1, l.Unread())
}

func TestLog_PublishesToEveryNotifier(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	l := NewLog(WithNotifier(Multi{a, b}))

	n := l.Append("成功", "库存信息已更新", models.NotificationSuccess)

	require.Len(t, a.seen, 1)
	require.Len(t, b.seen, 1)
	assert.Equal(t, n, a.seen[0])
}

func TestWithNotifier_NilKeepsNop(t *testing.T) {
	l := NewLog(WithNotifier(nil))
	assert.NotPanics(t, func() { l.Append("a", "x", models.NotificationInfo) })
}
