package state

import (
	"context"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

func (c *Controller) Settings() models.AppSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

func (c *Controller) UpdateSettings(ctx context.Context, patch models.SettingsPatch) models.AppSettings {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.Apply(patch)
	c.persist(ctx, store.KeySettings, c.settings)
	c.notes.Append("设置已保存", "系统配置更新成功", models.NotificationSuccess)
	return c.settings
}
