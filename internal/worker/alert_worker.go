package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/state"
)

// AlertSource is what the alert worker reads from.
type AlertSource interface {
	ListInventory() []models.InventoryItem
	ListMedia() []models.MediaResource
	Settings() models.AppSettings
	Notify(title, message string, typ models.NotificationType) models.Notification
}

var _ AlertSource = (*state.Controller)(nil)

// AlertWorker periodically derives inventory and media statuses and raises a
// warning notification when an entity moves into a state that needs attention.
// It never writes statuses back.
type AlertWorker struct {
	source   AlertSource
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	seen map[string]string
}

// NewAlertWorker constructs an AlertWorker.
func NewAlertWorker(source AlertSource, interval time.Duration) *AlertWorker {
	return &AlertWorker{
		source:   source,
		interval: interval,
		now:      time.Now,
		seen:     make(map[string]string),
	}
}

// Start runs one scan immediately and then on every tick until ctx is canceled.
func (w *AlertWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting alert worker")

	w.Scan()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Scan()
		case <-ctx.Done():
			log.Info().Msg("Alert worker stopped")
			return
		}
	}
}

// Scan checks every entity once and returns the number of alerts raised.
// An entity is alerted again only after its derived status changes.
func (w *AlertWorker) Scan() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	settings := w.source.Settings()
	now := w.now()
	current := make(map[string]string)
	raised := 0

	for _, item := range w.source.ListInventory() {
		status := models.DeriveInventoryStatus(item, settings)
		key := "inventory:" + item.ID
		current[key] = string(status)

		var msg string
		switch status {
		case models.InventoryLowStock:
			msg = fmt.Sprintf("%s 库存仅剩 %d 件", item.Name, item.Quantity)
		case models.InventoryOutOfStock:
			msg = fmt.Sprintf("%s 已缺货", item.Name)
		default:
			continue
		}
		if w.seen[key] == string(status) {
			continue
		}
		w.source.Notify("库存预警", msg, models.NotificationWarning)
		raised++
	}

	for _, m := range w.source.ListMedia() {
		status := models.DeriveMediaStatus(m, now)
		key := "media:" + m.ID
		current[key] = string(status)

		var msg string
		switch status {
		case models.MediaExpiring:
			msg = fmt.Sprintf("%s 合同将于 %s 到期", m.Name, m.ContractEnd)
		case models.MediaExpired:
			msg = fmt.Sprintf("%s 合同已于 %s 到期", m.Name, m.ContractEnd)
		default:
			continue
		}
		if w.seen[key] == string(status) {
			continue
		}
		w.source.Notify("媒体合同提醒", msg, models.NotificationWarning)
		raised++
	}

	w.seen = current
	if raised > 0 {
		log.Info().Int("alerts", raised).Msg("Raised dashboard alerts")
	}
	return raised
}
