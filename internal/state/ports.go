package state

import (
	"context"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

// Narrow views of the Controller handed to the HTTP layer and workers.

type InventoryPort interface {
	ListInventory() []models.InventoryItem
	GetInventory(id string) (*models.InventoryItem, error)
	CreateInventory(ctx context.Context, patch models.InventoryPatch) (*models.InventoryItem, error)
	UpdateInventory(ctx context.Context, id string, patch models.InventoryPatch) (*models.InventoryItem, error)
	DeleteInventory(ctx context.Context, id string) bool
	InventoryView(item models.InventoryItem) models.InventoryView
}

type MediaPort interface {
	ListMedia() []models.MediaResource
	GetMedia(id string) (*models.MediaResource, error)
	CreateMedia(ctx context.Context, patch models.MediaPatch) (*models.MediaResource, error)
	UpdateMedia(ctx context.Context, id string, patch models.MediaPatch) (*models.MediaResource, error)
	DeleteMedia(ctx context.Context, id string) bool
	MediaView(m models.MediaResource) models.MediaView
}

type ChannelPort interface {
	ListChannels() []models.SalesChannel
	GetChannel(id string) (*models.SalesChannel, error)
	CreateChannel(ctx context.Context, patch models.ChannelPatch) (*models.SalesChannel, error)
	UpdateChannel(ctx context.Context, id string, patch models.ChannelPatch) (*models.SalesChannel, error)
	DeleteChannel(ctx context.Context, id string) bool
}

type PlanPort interface {
	ListPlans() []models.PricingPlan
	GetPlan(id string) (*models.PricingPlan, error)
	CreatePlan(ctx context.Context, patch models.PlanPatch) (*models.PricingPlan, error)
	UpdatePlan(ctx context.Context, id string, patch models.PlanPatch) (*models.PricingPlan, error)
	DeletePlan(ctx context.Context, id string) bool
}

type SettingsPort interface {
	Settings() models.AppSettings
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) models.AppSettings
}

// Reader is the read-only view used by the dashboard and the alert worker.
type Reader interface {
	ListInventory() []models.InventoryItem
	ListMedia() []models.MediaResource
	ListChannels() []models.SalesChannel
	Settings() models.AppSettings
	Summary() Summary
	Export() Snapshot
}

// Notifier appends notifications outside of entity mutations.
type Notifier interface {
	Notify(title, message string, typ models.NotificationType) models.Notification
}

var (
	_ InventoryPort = (*Controller)(nil)
	_ MediaPort     = (*Controller)(nil)
	_ ChannelPort   = (*Controller)(nil)
	_ PlanPort      = (*Controller)(nil)
	_ SettingsPort  = (*Controller)(nil)
	_ Reader        = (*Controller)(nil)
	_ Notifier      = (*Controller)(nil)
)
