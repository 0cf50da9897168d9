package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

func TestComputePricingMetrics(t *testing.T) {
	item := models.InventoryItem{MarketPrice: 4999, CostPrice: 2000}
	channel := models.SalesChannel{CommissionRate: 0.12}

	got := ComputePricingMetrics(item, channel, 3000)

	assert.Equal(t, 640.0, got.MarginAfterCommission)
	assert.Equal(t, int64(40), got.MarketDiscountPct)
	assert.Equal(t, 3000.0, got.SuggestedPrice)
}

func TestComputePricingMetrics_ZeroMarketPrice(t *testing.T) {
	got := ComputePricingMetrics(models.InventoryItem{CostPrice: 10}, models.SalesChannel{}, 20)

	assert.Equal(t, int64(0), got.MarketDiscountPct)
	assert.Equal(t, 10.0, got.MarginAfterCommission)
}

func TestComputeSimulationMetrics(t *testing.T) {
	item := models.InventoryItem{CostPrice: 2000}
	channel := models.SalesChannel{CommissionRate: 0.1}

	got := ComputeSimulationMetrics(item, channel, models.SimulationInputs{
		SellPrice: 3000,
		Quantity:  10,
		MediaCost: 5000,
	})

	assert.Equal(t, 30000.0, got.Revenue)
	assert.Equal(t, 3000.0, got.Commission)
	assert.Equal(t, 20000.0, got.GoodsCost)
	assert.Equal(t, 2000.0, got.Profit)
	assert.Equal(t, 8.0, got.ROIPct)
}

func TestComputeSimulationMetrics_NoSpend(t *testing.T) {
	got := ComputeSimulationMetrics(models.InventoryItem{}, models.SalesChannel{}, models.SimulationInputs{})
	assert.Equal(t, 0.0, got.ROIPct)
}
