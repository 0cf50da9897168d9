package state

import (
	"context"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

func inventoryID(i models.InventoryItem) string { return i.ID }

// ListInventory returns the items, most recently created first.
func (c *Controller) ListInventory() []models.InventoryItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.inventory)
}

func (c *Controller) GetInventory(id string) (*models.InventoryItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := indexOf(c.inventory, id, inventoryID)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := c.inventory[i]
	return &item, nil
}

// InventoryView pairs item with the status the current thresholds derive for it.
func (c *Controller) InventoryView(item models.InventoryItem) models.InventoryView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.InventoryView{InventoryItem: item, DerivedStatus: models.DeriveInventoryStatus(item, c.settings)}
}

// CreateInventory merges patch over the entry defaults under a fresh id.
func (c *Controller) CreateInventory(ctx context.Context, patch models.InventoryPatch) (*models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	item := models.NewInventoryItem(uniqueID(c.newID, c.inventory, inventoryID), now)
	item.Apply(patch, now)

	c.inventory = prepend(c.inventory, item)
	c.persist(ctx, store.KeyInventory, c.inventory)
	c.success("库存信息已更新")
	return &item, nil
}

// UpdateInventory merges patch into the item. Unknown ids change nothing.
func (c *Controller) UpdateInventory(ctx context.Context, id string, patch models.InventoryPatch) (*models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.inventory, id, inventoryID)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := c.inventory[i]
	item.Apply(patch, c.now())

	c.inventory = replaced(c.inventory, i, item)
	c.persist(ctx, store.KeyInventory, c.inventory)
	c.success("库存信息已更新")
	return &item, nil
}

// DeleteInventory removes the item and reports whether it existed.
func (c *Controller) DeleteInventory(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.inventory, id, inventoryID)
	if i < 0 {
		return false
	}
	c.inventory = without(c.inventory, i)
	c.persist(ctx, store.KeyInventory, c.inventory)
	c.notes.Append("已删除", "库存信息已删除", models.NotificationSuccess)
	return true
}
