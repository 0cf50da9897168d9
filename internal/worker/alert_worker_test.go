package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

type sentAlert struct {
	title, message string
}

type fakeSource struct {
	inventory []models.InventoryItem
	media     []models.MediaResource
	settings  models.AppSettings
	sent      []sentAlert
}

func (f *fakeSource) ListInventory() []models.InventoryItem { return f.inventory }

func (f *fakeSource) ListMedia() []models.MediaResource { return f.media }

func (f *fakeSource) Settings() models.AppSettings { return f.settings }

func (f *fakeSource) Notify(title, message string, typ models.NotificationType) models.Notification {
	f.sent = append(f.sent, sentAlert{title, message})
	return models.Notification{Title: title, Message: message, Type: typ}
}

func newWorker(src *fakeSource) *AlertWorker {
	w := NewAlertWorker(src, time.Hour)
	w.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return w
}

func TestScan_RaisesOncePerStatus(t *testing.T) {
	src := &fakeSource{
		settings: models.DefaultSettings(),
		inventory: []models.InventoryItem{
			{ID: "1", Name: "充足", Quantity: 500},
			{ID: "2", Name: "苏打水", Quantity: 42},
			{ID: "3", Name: "学习机", Quantity: 0},
		},
		media: []models.MediaResource{
			{ID: "m1", Name: "德高", ContractStart: "2023-01-01", ContractEnd: "2024-06-15"},
			{ID: "m2", Name: "分众", ContractStart: "2023-01-01", ContractEnd: "2024-05-01"},
			{ID: "m3", Name: "新潮", ContractStart: "2024-01-01", ContractEnd: "2025-01-01"},
		},
	}
	w := newWorker(src)

	require.Equal(t, 4, w.Scan())
	assert.Equal(t, []sentAlert{
		{"库存预警", "苏打水 库存仅剩 42 件"},
		{"库存预警", "学习机 已缺货"},
		{"媒体合同提醒", "德高 合同将于 2024-06-15 到期"},
		{"媒体合同提醒", "分众 合同已于 2024-05-01 到期"},
	}, src.sent)

	assert.Equal(t, 0, w.Scan())
	assert.Len(t, src.sent, 4)
}

func TestScan_AlertsAgainAfterStatusChange(t *testing.T) {
	src := &fakeSource{
		settings:  models.DefaultSettings(),
		inventory: []models.InventoryItem{{ID: "1", Name: "苏打水", Quantity: 10}},
	}
	w := newWorker(src)
	require.Equal(t, 1, w.Scan())

	src.inventory[0].Quantity = 0
	require.Equal(t, 1, w.Scan())
	assert.Equal(t, "苏打水 已缺货", src.sent[1].message)

	src.inventory[0].Quantity = 300
	require.Equal(t, 0, w.Scan())

	src.inventory[0].Quantity = 5
	require.Equal(t, 1, w.Scan())
}

func TestScan_DoesNotMutateEntities(t *testing.T) {
	src := &fakeSource{
		settings:  models.DefaultSettings(),
		inventory: []models.InventoryItem{{ID: "1", Name: "苏打水", Quantity: 0, Status: models.InventoryInStock}},
	}
	newWorker(src).Scan()

	assert.Equal(t, models.InventoryInStock, src.inventory[0].Status)
}

func TestScan_DiscontinuedIsSilent(t *testing.T) {
	src := &fakeSource{
		settings:  models.DefaultSettings(),
		inventory: []models.InventoryItem{{ID: "1", Quantity: 0, Status: models.InventoryDiscontinued}},
	}

	assert.Equal(t, 0, newWorker(src).Scan())
}
