package models

import "time"

// ExpiringWindow is how close to its end date a contract counts as expiring.
const ExpiringWindow = 30 * 24 * time.Hour

// DeriveInventoryStatus classifies stock by quantity against the settings
// thresholds. Discontinued items stay discontinued.
func DeriveInventoryStatus(item InventoryItem, settings AppSettings) InventoryStatus {
	switch {
	case item.Status == InventoryDiscontinued:
		return InventoryDiscontinued
	case item.Quantity <= settings.OutOfStockThreshold:
		return InventoryOutOfStock
	case item.Quantity <= settings.LowStockThreshold:
		return InventoryLowStock
	default:
		return InventoryInStock
	}
}

// DeriveMediaStatus classifies a contract window relative to now. Resources
// with unparseable dates keep their stored status.
func DeriveMediaStatus(m MediaResource, now time.Time) MediaStatus {
	start, errStart := time.ParseInLocation(DateLayout, m.ContractStart, now.Location())
	end, errEnd := time.ParseInLocation(DateLayout, m.ContractEnd, now.Location())
	if errStart != nil || errEnd != nil {
		return m.Status
	}
	// the end date is inclusive
	end = end.Add(24 * time.Hour)

	switch {
	case now.Before(start):
		return MediaPending
	case !now.Before(end):
		return MediaExpired
	case end.Sub(now) <= ExpiringWindow:
		return MediaExpiring
	default:
		return MediaActive
	}
}

// InventoryView is an item as listed, with the status its quantity implies.
// DerivedStatus is read-only and never written back to Status.
type InventoryView struct {
	InventoryItem
	DerivedStatus InventoryStatus `json:"derivedStatus"`
}

// MediaView is a media resource with the status its contract window implies.
type MediaView struct {
	MediaResource
	DerivedStatus MediaStatus `json:"derivedStatus"`
}
