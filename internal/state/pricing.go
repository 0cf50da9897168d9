package state

import (
	"github.com/shopspring/decimal"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

var hundred = decimal.NewFromInt(100)

// PricingMetrics are the figures shown next to a suggested channel price.
type PricingMetrics struct {
	SuggestedPrice float64 `json:"suggestedPrice"`
	// MarketDiscountPct is how far below the market price the suggestion sits, in whole percent.
	MarketDiscountPct int64 `json:"marketDiscountPct"`
	// MarginAfterCommission = suggested*(1-commission) - cost.
	MarginAfterCommission float64 `json:"marginAfterCommission"`
}

func ComputePricingMetrics(item models.InventoryItem, channel models.SalesChannel, suggestedPrice float64) PricingMetrics {
	suggested := decimal.NewFromFloat(suggestedPrice)
	keep := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(channel.CommissionRate))
	margin := suggested.Mul(keep).Sub(decimal.NewFromFloat(item.CostPrice))

	var discount int64
	if item.MarketPrice > 0 {
		ratio := suggested.Div(decimal.NewFromFloat(item.MarketPrice))
		discount = decimal.NewFromInt(1).Sub(ratio).Mul(hundred).Round(0).IntPart()
	}

	return PricingMetrics{
		SuggestedPrice:        suggestedPrice,
		MarketDiscountPct:     discount,
		MarginAfterCommission: margin.InexactFloat64(),
	}
}

// SimulationMetrics is the deterministic profit arithmetic for a simulated campaign.
type SimulationMetrics struct {
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
	GoodsCost  float64 `json:"goodsCost"`
	MediaCost  float64 `json:"mediaCost"`
	Profit     float64 `json:"profit"`
	ROIPct     float64 `json:"roiPct"`
}

func ComputeSimulationMetrics(item models.InventoryItem, channel models.SalesChannel, in models.SimulationInputs) SimulationMetrics {
	qty := decimal.NewFromInt(int64(in.Quantity))
	revenue := decimal.NewFromFloat(in.SellPrice).Mul(qty)
	commission := revenue.Mul(decimal.NewFromFloat(channel.CommissionRate))
	goods := decimal.NewFromFloat(item.CostPrice).Mul(qty)
	media := decimal.NewFromFloat(in.MediaCost)

	spend := goods.Add(media)
	profit := revenue.Sub(commission).Sub(spend)

	roi := decimal.Zero
	if spend.IsPositive() {
		roi = profit.Div(spend).Mul(hundred).Round(2)
	}

	return SimulationMetrics{
		Revenue:    revenue.InexactFloat64(),
		Commission: commission.InexactFloat64(),
		GoodsCost:  goods.InexactFloat64(),
		MediaCost:  media.InexactFloat64(),
		Profit:     profit.InexactFloat64(),
		ROIPct:     roi.InexactFloat64(),
	}
}
