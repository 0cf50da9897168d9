package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/notify"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

// ErrNotFound is returned when an id does not exist in its collection.
var ErrNotFound = errors.New("entity not found")

// Controller owns the dashboard collections of one session. All mutation
// goes through it: each successful create, update or delete rewrites the
// affected collection in the store and appends one notification.
type Controller struct {
	mu sync.RWMutex

	store *store.Store
	notes *notify.Log
	now   func() time.Time
	newID func() string

	inventory []models.InventoryItem
	media     []models.MediaResource
	channels  []models.SalesChannel
	settings  models.AppSettings
	plans     []models.PricingPlan
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// New loads every collection from s, falling back to the seed data for
// anything missing or unreadable.
func New(ctx context.Context, s *store.Store, notes *notify.Log, opts ...Option) *Controller {
	c := &Controller{
		store: s,
		notes: notes,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notes == nil {
		c.notes = notify.NewLog()
	}

	c.inventory = store.Load(ctx, s, store.KeyInventory, models.SeedInventory())
	c.media = store.Load(ctx, s, store.KeyMedia, models.SeedMedia())
	c.channels = store.Load(ctx, s, store.KeyChannels, models.SeedChannels())
	c.settings = store.Load(ctx, s, store.KeySettings, models.DefaultSettings())
	c.plans = store.Load(ctx, s, store.KeyPlans, []models.PricingPlan{})

	return c
}

// Notifications exposes the session's notification log.
func (c *Controller) Notifications() *notify.Log {
	return c.notes
}

// Notify appends a notification that is not tied to a mutation, such as an
// advisory failure or a background alert.
func (c *Controller) Notify(title, message string, typ models.NotificationType) models.Notification {
	return c.notes.Append(title, message, typ)
}

// persistTimeout bounds a single document write.
const persistTimeout = 10 * time.Second

// persist is best effort; the store logs and counts failures. The write
// outlives the caller's context so a dropped request cannot leave the saved
// copy behind the in-memory state.
func (c *Controller) persist(ctx context.Context, key string, value any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	_ = c.store.Save(ctx, key, value)
}

func (c *Controller) success(message string) {
	c.notes.Append("成功", message, models.NotificationSuccess)
}

// uniqueID draws ids until one is unused in the collection.
func uniqueID[T any](gen func() string, items []T, idOf func(T) string) string {
	for {
		id := gen()
		if indexOf(items, id, idOf) < 0 {
			return id
		}
	}
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

// without returns a new slice with element i removed.
func without[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// replaced returns a new slice with element i set to v.
func replaced[T any](items []T, i int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
