package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

func TestSummary_SeedData(t *testing.T) {
	c, _ := newTestController(t)

	sum := c.Summary()

	// 1085*4999 + 2788*1973 + 1988*600 + 526*4894 + 42*18775
	assert.Equal(t, 15480233.0, sum.TotalInventoryValue)
	assert.Equal(t, 6429, sum.TotalUnits)
	assert.Equal(t, 80000.0, sum.MediaValuation)
	assert.Equal(t, 2, sum.ChannelCount)
	assert.Equal(t, 1, sum.LowStockCount)
	assert.Equal(t, 0, sum.ExpiringMediaCount)
	assert.Len(t, sum.RecentInventory, 5)
}

func TestSummary_CountsExpiringContracts(t *testing.T) {
	c, _ := newTestController(t)
	_, err := c.UpdateMedia(context.Background(), "m2", models.MediaPatch{ContractEnd: strPtr("2024-06-15")})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Summary().ExpiringMediaCount)
}

func TestSummary_MissingValuationCountsAsZero(t *testing.T) {
	c, _ := newTestController(t)
	_, err := c.UpdateMedia(context.Background(), "m1", models.MediaPatch{Valuation: models.Clear[float64]()})
	require.NoError(t, err)

	assert.Equal(t, 30000.0, c.Summary().MediaValuation)
}

func TestSummary_RecentInventoryIsCapped(t *testing.T) {
	c, _ := newTestController(t)
	created, err := c.CreateInventory(context.Background(), models.InventoryPatch{Name: strPtr("x")})
	require.NoError(t, err)

	sum := c.Summary()
	require.Len(t, sum.RecentInventory, 5)
	assert.Equal(t, created.ID, sum.RecentInventory[0].ID)
}
