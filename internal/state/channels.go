package state

import (
	"context"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

func channelID(ch models.SalesChannel) string { return ch.ID }

func (c *Controller) ListChannels() []models.SalesChannel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.channels)
}

func (c *Controller) GetChannel(id string) (*models.SalesChannel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := indexOf(c.channels, id, channelID)
	if i < 0 {
		return nil, ErrNotFound
	}
	ch := c.channels[i]
	return &ch, nil
}

func (c *Controller) CreateChannel(ctx context.Context, patch models.ChannelPatch) (*models.SalesChannel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := models.NewSalesChannel(uniqueID(c.newID, c.channels, channelID))
	ch.Apply(patch)

	c.channels = prepend(c.channels, ch)
	c.persist(ctx, store.KeyChannels, c.channels)
	c.success("分销渠道已更新")
	return &ch, nil
}

func (c *Controller) UpdateChannel(ctx context.Context, id string, patch models.ChannelPatch) (*models.SalesChannel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.channels, id, channelID)
	if i < 0 {
		return nil, ErrNotFound
	}
	ch := c.channels[i]
	ch.Apply(patch)

	c.channels = replaced(c.channels, i, ch)
	c.persist(ctx, store.KeyChannels, c.channels)
	c.success("分销渠道已更新")
	return &ch, nil
}

func (c *Controller) DeleteChannel(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.channels, id, channelID)
	if i < 0 {
		return false
	}
	c.channels = without(c.channels, i)
	c.persist(ctx, store.KeyChannels, c.channels)
	c.notes.Append("已删除", "分销渠道已删除", models.NotificationSuccess)
	return true
}
