package state

import (
	"context"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

func mediaID(m models.MediaResource) string { return m.ID }

func (c *Controller) ListMedia() []models.MediaResource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.media)
}

func (c *Controller) GetMedia(id string) (*models.MediaResource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := indexOf(c.media, id, mediaID)
	if i < 0 {
		return nil, ErrNotFound
	}
	m := c.media[i]
	return &m, nil
}

func (c *Controller) MediaView(m models.MediaResource) models.MediaView {
	return models.MediaView{MediaResource: m, DerivedStatus: models.DeriveMediaStatus(m, c.now())}
}

// CreateMedia rejects inverted contract windows with models.ErrInvalidContractDates.
func (c *Controller) CreateMedia(ctx context.Context, patch models.MediaPatch) (*models.MediaResource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := models.NewMediaResource(uniqueID(c.newID, c.media, mediaID), c.now())
	m.Apply(patch)
	if err := m.ValidateContract(); err != nil {
		return nil, err
	}

	c.media = prepend(c.media, m)
	c.persist(ctx, store.KeyMedia, c.media)
	c.success("媒体资源已更新")
	return &m, nil
}

func (c *Controller) UpdateMedia(ctx context.Context, id string, patch models.MediaPatch) (*models.MediaResource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.media, id, mediaID)
	if i < 0 {
		return nil, ErrNotFound
	}
	m := c.media[i]
	m.Apply(patch)
	if err := m.ValidateContract(); err != nil {
		return nil, err
	}

	c.media = replaced(c.media, i, m)
	c.persist(ctx, store.KeyMedia, c.media)
	c.success("媒体资源已更新")
	return &m, nil
}

func (c *Controller) DeleteMedia(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.media, id, mediaID)
	if i < 0 {
		return false
	}
	c.media = without(c.media, i)
	c.persist(ctx, store.KeyMedia, c.media)
	c.notes.Append("已删除", "媒体资源已删除", models.NotificationSuccess)
	return true
}
