package state

import (
	"context"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

func planID(p models.PricingPlan) string { return p.ID }

func (c *Controller) ListPlans() []models.PricingPlan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.plans)
}

func (c *Controller) GetPlan(id string) (*models.PricingPlan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := indexOf(c.plans, id, planID)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := c.plans[i]
	return &p, nil
}

func (c *Controller) CreatePlan(ctx context.Context, patch models.PlanPatch) (*models.PricingPlan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	p := models.NewPricingPlan(uniqueID(c.newID, c.plans, planID), now)
	p.Apply(patch, now)

	c.plans = prepend(c.plans, p)
	c.persist(ctx, store.KeyPlans, c.plans)
	c.success("定价方案已更新")
	return &p, nil
}

func (c *Controller) UpdatePlan(ctx context.Context, id string, patch models.PlanPatch) (*models.PricingPlan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.plans, id, planID)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := c.plans[i]
	p.Apply(patch, c.now())

	c.plans = replaced(c.plans, i, p)
	c.persist(ctx, store.KeyPlans, c.plans)
	c.success("定价方案已更新")
	return &p, nil
}

func (c *Controller) DeletePlan(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.plans, id, planID)
	if i < 0 {
		return false
	}
	c.plans = without(c.plans, i)
	c.persist(ctx, store.KeyPlans, c.plans)
	c.notes.Append("已删除", "定价方案已删除", models.NotificationSuccess)
	return true
}
