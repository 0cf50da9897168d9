package state

import (
	"github.com/shopspring/decimal"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

const recentInventoryLimit = 5

// Summary holds the dashboard headline figures.
type Summary struct {
	TotalInventoryValue float64                `json:"totalInventoryValue"`
	TotalUnits          int                    `json:"totalUnits"`
	MediaValuation      float64                `json:"mediaValuation"`
	ChannelCount        int                    `json:"channelCount"`
	LowStockCount       int                    `json:"lowStockCount"`
	ExpiringMediaCount  int                    `json:"expiringMediaCount"`
	RecentInventory     []models.InventoryItem `json:"recentInventory"`
}

// Summary computes the dashboard totals. Money is summed in decimal so the
// totals match what a user adds up by hand.
func (c *Controller) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	value := decimal.Zero
	units := 0
	low := 0
	for _, item := range c.inventory {
		value = value.Add(decimal.NewFromFloat(item.MarketPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
		units += item.Quantity
		switch models.DeriveInventoryStatus(item, c.settings) {
		case models.InventoryLowStock, models.InventoryOutOfStock:
			low++
		}
	}

	valuation := decimal.Zero
	expiring := 0
	for _, m := range c.media {
		valuation = valuation.Add(decimal.NewFromFloat(m.ValuationOrZero()))
		switch models.DeriveMediaStatus(m, now) {
		case models.MediaExpiring, models.MediaExpired:
			expiring++
		}
	}

	recent := c.inventory
	if len(recent) > recentInventoryLimit {
		recent = recent[:recentInventoryLimit]
	}

	return Summary{
		TotalInventoryValue: value.InexactFloat64(),
		TotalUnits:          units,
		MediaValuation:      valuation.InexactFloat64(),
		ChannelCount:        len(c.channels),
		LowStockCount:       low,
		ExpiringMediaCount:  expiring,
		RecentInventory:     clone(recent),
	}
}
