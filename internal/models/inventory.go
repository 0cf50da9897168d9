package models

import "time"

// InventoryStatus classifies stock availability. It is advisory: the core never
// recomputes it from Quantity (see DeriveInventoryStatus for the derived view).
type InventoryStatus string

const (
	InventoryInStock      InventoryStatus = "IN_STOCK"
	InventoryLowStock     InventoryStatus = "LOW_STOCK"
	InventoryOutOfStock   InventoryStatus = "OUT_OF_STOCK"
	InventoryDiscontinued InventoryStatus = "DISCONTINUED"
)

// DefaultInventoryCategory is the category preselected for new items.
const DefaultInventoryCategory = "电子产品"

// InventoryItem is a good acquired as payment-in-kind for advertising.
// MarketPrice is the retail price, CostPrice the effective cost in ad credits.
type InventoryItem struct {
	ID          string          `json:"id" binding:"required"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	MarketPrice float64         `json:"marketPrice" binding:"min=0"`
	CostPrice   float64         `json:"costPrice" binding:"min=0"`
	LowestPrice *float64        `json:"lowestPrice,omitempty"`
	ProductURL  *string         `json:"productUrl,omitempty"`
	Status      InventoryStatus `json:"status" binding:"oneof=IN_STOCK LOW_STOCK OUT_OF_STOCK DISCONTINUED"`
	Description *string         `json:"description,omitempty"`
	LastUpdated string          `json:"lastUpdated"`
}

// InventoryPatch carries the fields supplied by a create or update.
// Nil pointers and unset Optionals leave the current value untouched.
type InventoryPatch struct {
	Name        *string           `json:"name"`
	Brand       *string           `json:"brand"`
	Category    *string           `json:"category"`
	Quantity    *int              `json:"quantity" binding:"omitempty,min=0"`
	MarketPrice *float64          `json:"marketPrice" binding:"omitempty,min=0"`
	CostPrice   *float64          `json:"costPrice" binding:"omitempty,min=0"`
	LowestPrice Optional[float64] `json:"lowestPrice"`
	ProductURL  Optional[string]  `json:"productUrl"`
	Status      *InventoryStatus  `json:"status" binding:"omitempty,oneof=IN_STOCK LOW_STOCK OUT_OF_STOCK DISCONTINUED"`
	Description Optional[string]  `json:"description"`
}

// NewInventoryItem returns an item populated with the entry-form defaults.
func NewInventoryItem(id string, now time.Time) InventoryItem {
	return InventoryItem{
		ID:          id,
		Category:    DefaultInventoryCategory,
		Status:      InventoryInStock,
		LastUpdated: Timestamp(now),
	}
}

// Apply merges p into the item and stamps LastUpdated.
func (i *InventoryItem) Apply(p InventoryPatch, now time.Time) {
	setIf(&i.Name, p.Name)
	setIf(&i.Brand, p.Brand)
	setIf(&i.Category, p.Category)
	setIf(&i.Quantity, p.Quantity)
	setIf(&i.MarketPrice, p.MarketPrice)
	setIf(&i.CostPrice, p.CostPrice)
	p.LowestPrice.applyTo(&i.LowestPrice)
	p.ProductURL.applyTo(&i.ProductURL)
	setIf(&i.Status, p.Status)
	p.Description.applyTo(&i.Description)
	i.LastUpdated = Timestamp(now)
}

// Timestamp formats t the way lastUpdated fields are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
