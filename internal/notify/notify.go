package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

// Notifier receives every notification appended to a Log. Implementations
// must not block; delivery is best effort.
type Notifier interface {
	Publish(n models.Notification)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Publish(n models.Notification) {
	for _, notifier := range m {
		notifier.Publish(n)
	}
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Publish(models.Notification) {}

// Log is the in-memory, most-recent-first notification list of a session.
// It is never persisted.
type Log struct {
	mu       sync.RWMutex
	entries  []models.Notification
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

type Option func(*Log)

// WithNotifier sets where appended notifications are fanned out.
func WithNotifier(n Notifier) Option {
	return func(l *Log) {
		if n != nil {
			l.notifier = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(l *Log) { l.newID = gen }
}

func NewLog(opts ...Option) *Log {
	l := &Log{
		notifier: Nop{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records a new unread notification at the head of the log.
func (l *Log) Append(title, message string, typ models.NotificationType) models.Notification {
	n := models.Notification{
		ID:        l.newID(),
		Title:     title,
		Message:   message,
		Type:      typ,
		Timestamp: l.now(),
	}

	l.mu.Lock()
	l.entries = append([]models.Notification{n}, l.entries...)
	l.mu.Unlock()

	l.notifier.Publish(n)
	return n
}

// List returns a copy of the log, newest first.
func (l *Log) List() []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Notification, len(l.entries))
	copy(out, l.entries)
	return out
}

// MarkRead sets the read flag of one entry. It reports whether the id exists.
func (l *Log) MarkRead(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Read = true
			return true
		}
	}
	return false
}

func (l *Log) ClearAll() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

// Unread counts entries not yet marked read.
func (l *Log) Unread() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, e := range l.entries {
		if !e.Read {
			n++
		}
	}
	return n
}
