package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestController(t)
	_, err := src.CreateChannel(ctx, models.ChannelPatch{Name: strPtr("抖音")})
	require.NoError(t, err)
	src.UpdateSettings(ctx, models.SettingsPatch{LowStockThreshold: intPtr(10)})

	snap := src.Export()

	dst, s := newTestController(t)
	require.NoError(t, dst.Import(ctx, snap))

	assert.Equal(t, snap, dst.Export())
	assert.Equal(t, snap.Channels, store.Load(ctx, s, store.KeyChannels, []models.SalesChannel{}))

	notes := dst.Notifications().List()
	require.Len(t, notes, 1)
	assert.Equal(t, "数据已导入", notes[0].Title)
}

func TestImport_RejectsDuplicateIDs(t *testing.T) {
	c, _ := newTestController(t)
	snap := c.Export()
	snap.Inventory = append(snap.Inventory, snap.Inventory[0])

	err := c.Import(context.Background(), snap)

	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, c.ListInventory(), 5)
	assert.Empty(t, c.Notifications().List())
}

func TestImport_NilCollectionsBecomeEmpty(t *testing.T) {
	c, _ := newTestController(t)

	require.NoError(t, c.Import(context.Background(), Snapshot{Settings: models.DefaultSettings()}))

	assert.NotNil(t, c.ListInventory())
	assert.Empty(t, c.ListInventory())
	assert.Equal(t, 0, c.Summary().ChannelCount)
}

func TestImport_RejectsRuleViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"discount above one", func(s *Snapshot) { s.Media[0].Discount = 5 }},
		{"unknown inventory status", func(s *Snapshot) { s.Inventory[0].Status = "SOLD" }},
		{"negative threshold", func(s *Snapshot) { s.Settings.LowStockThreshold = -1 }},
		{"unknown channel type", func(s *Snapshot) { s.Channels[0].Type = "Radio" }},
		{"bad contract date", func(s *Snapshot) { s.Media[1].ContractEnd = "31/12/2024" }},
		{"missing id", func(s *Snapshot) { s.Inventory[2].ID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)
			snap := c.Export()
			tt.mutate(&snap)

			err := c.Import(context.Background(), snap)

			assert.ErrorIs(t, err, ErrInvalidSnapshot)
			assert.Equal(t, models.SeedInventory(), c.ListInventory())
			assert.Equal(t, models.DefaultSettings(), c.Settings())
			assert.Empty(t, c.Notifications().List())
		})
	}
}
