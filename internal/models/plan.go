package models

import "time"

// PlanStatus tracks a pricing plan through execution.
type PlanStatus string

const (
	PlanExecuted PlanStatus = "executed"
	PlanPending  PlanStatus = "pending"
	PlanDraft    PlanStatus = "draft"
)

// PricingPlan links one inventory item, one media resource and one sales
// channel with the bid price and ROI chosen for the combination. Names and
// costs are denormalized so a plan survives edits to its sources.
type PricingPlan struct {
	ID            string     `json:"id" binding:"required"`
	InventoryID   string     `json:"inventoryId"`
	InventoryName string     `json:"inventoryName"`
	InventoryCost float64    `json:"inventoryCost" binding:"min=0"`
	MediaID       string     `json:"mediaId"`
	MediaName     string     `json:"mediaName"`
	MediaCostStr  string     `json:"mediaCostStr"`
	ChannelID     string     `json:"channelId"`
	ChannelName   string     `json:"channelName"`
	ChannelBid    float64    `json:"channelBid" binding:"min=0"`
	ROI           float64    `json:"roi"`
	Status        PlanStatus `json:"status" binding:"oneof=executed pending draft"`
	LastUpdated   string     `json:"lastUpdated"`
}

type PlanPatch struct {
	InventoryID   *string     `json:"inventoryId"`
	InventoryName *string     `json:"inventoryName"`
	InventoryCost *float64    `json:"inventoryCost" binding:"omitempty,min=0"`
	MediaID       *string     `json:"mediaId"`
	MediaName     *string     `json:"mediaName"`
	MediaCostStr  *string     `json:"mediaCostStr"`
	ChannelID     *string     `json:"channelId"`
	ChannelName   *string     `json:"channelName"`
	ChannelBid    *float64    `json:"channelBid" binding:"omitempty,min=0"`
	ROI           *float64    `json:"roi"`
	Status        *PlanStatus `json:"status" binding:"omitempty,oneof=executed pending draft"`
}

func NewPricingPlan(id string, now time.Time) PricingPlan {
	return PricingPlan{ID: id, Status: PlanDraft, LastUpdated: Timestamp(now)}
}

func (p *PricingPlan) Apply(patch PlanPatch, now time.Time) {
	setIf(&p.InventoryID, patch.InventoryID)
	setIf(&p.InventoryName, patch.InventoryName)
	setIf(&p.InventoryCost, patch.InventoryCost)
	setIf(&p.MediaID, patch.MediaID)
	setIf(&p.MediaName, patch.MediaName)
	setIf(&p.MediaCostStr, patch.MediaCostStr)
	setIf(&p.ChannelID, patch.ChannelID)
	setIf(&p.ChannelName, patch.ChannelName)
	setIf(&p.ChannelBid, patch.ChannelBid)
	setIf(&p.ROI, patch.ROI)
	setIf(&p.Status, patch.Status)
	p.LastUpdated = Timestamp(now)
}

// PlanPatchFor builds a draft plan patch from a priced combination.
func PlanPatchFor(item InventoryItem, media MediaResource, channel SalesChannel, bid, roi float64) PlanPatch {
	status := PlanDraft
	return PlanPatch{
		InventoryID:   &item.ID,
		InventoryName: &item.Name,
		InventoryCost: &item.CostPrice,
		MediaID:       &media.ID,
		MediaName:     &media.Name,
		MediaCostStr:  &media.Rate,
		ChannelID:     &channel.ID,
		ChannelName:   &channel.Name,
		ChannelBid:    &bid,
		ROI:           &roi,
		Status:        &status,
	}
}
