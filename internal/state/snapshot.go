package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

var (
	// ErrDuplicateID is returned when an imported collection repeats an id.
	ErrDuplicateID = errors.New("duplicate id in snapshot")
	// ErrInvalidSnapshot wraps entity rule violations found on import.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// entityRules checks imported entities against the same binding rules the
// HTTP layer applies to patches.
var entityRules = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// Snapshot bundles the five persisted documents.
type Snapshot struct {
	Inventory []models.InventoryItem `json:"inventory" binding:"dive"`
	Media     []models.MediaResource `json:"media" binding:"dive"`
	Channels  []models.SalesChannel  `json:"channels" binding:"dive"`
	Settings  models.AppSettings     `json:"settings"`
	Plans     []models.PricingPlan   `json:"plans" binding:"dive"`
}

func (c *Controller) Export() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Inventory: clone(c.inventory),
		Media:     clone(c.media),
		Channels:  clone(c.channels),
		Settings:  c.settings,
		Plans:     clone(c.plans),
	}
}

// Import replaces every collection with the snapshot, persists each
// document and appends a single notification.
func (c *Controller) Import(ctx context.Context, snap Snapshot) error {
	if err := entityRules.Struct(snap); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err := checkUnique(snap.Inventory, inventoryID); err != nil {
		return err
	}
	if err := checkUnique(snap.Media, mediaID); err != nil {
		return err
	}
	if err := checkUnique(snap.Channels, channelID); err != nil {
		return err
	}
	if err := checkUnique(snap.Plans, planID); err != nil {
		return err
	}
	for _, m := range snap.Media {
		if err := m.ValidateContract(); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inventory = nonNil(snap.Inventory)
	c.media = nonNil(snap.Media)
	c.channels = nonNil(snap.Channels)
	c.settings = snap.Settings
	c.plans = nonNil(snap.Plans)

	c.persist(ctx, store.KeyInventory, c.inventory)
	c.persist(ctx, store.KeyMedia, c.media)
	c.persist(ctx, store.KeyChannels, c.channels)
	c.persist(ctx, store.KeySettings, c.settings)
	c.persist(ctx, store.KeyPlans, c.plans)

	c.notes.Append("数据已导入", "全部数据已从快照恢复", models.NotificationSuccess)
	return nil
}

func checkUnique[T any](items []T, idOf func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := idOf(item)
		if _, ok := seen[id]; ok {
			return ErrDuplicateID
		}
		seen[id] = struct{}{}
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return clone(items)
}
