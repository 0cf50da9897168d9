package state

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/notify"
	"github.com/GTDGit/duckwolf_api/internal/store"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, opts ...Option) (*Controller, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), "duckwolf_", nil)
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return New(context.Background(), s, notify.NewLog(), opts...), s
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestNew_SeedsEmptyStore(t *testing.T) {
	c, _ := newTestController(t)

	assert.Len(t, c.ListInventory(), 5)
	assert.Len(t, c.ListMedia(), 2)
	assert.Len(t, c.ListChannels(), 2)
	assert.Empty(t, c.ListPlans())
	assert.Equal(t, models.DefaultSettings(), c.Settings())
	assert.Empty(t, c.Notifications().List())
}

func TestNew_LoadsSavedCollections(t *testing.T) {
	ctx := context.Background()
	c, s := newTestController(t)

	_, err := c.CreateChannel(ctx, models.ChannelPatch{Name: strPtr("闲鱼")})
	require.NoError(t, err)

	reloaded := New(ctx, s, nil)
	require.Len(t, reloaded.ListChannels(), 3)
	assert.Equal(t, "闲鱼", reloaded.ListChannels()[0].Name)
}

func TestCreate_IDsAreUnique(t *testing.T) {
	ids := []string{"1", "1", "2", "new"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}
	c, _ := newTestController(t, WithIDGenerator(gen))

	item, err := c.CreateInventory(context.Background(), models.InventoryPatch{Name: strPtr("A")})
	require.NoError(t, err)

	// "1" and "2" are taken by seed items
	assert.Equal(t, "new", item.ID)
	seen := map[string]bool{}
	for _, it := range c.ListInventory() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestCreateInventory_PrependsAndStamps(t *testing.T) {
	c, _ := newTestController(t)

	item, err := c.CreateInventory(context.Background(), models.InventoryPatch{
		Name:     strPtr("新品"),
		Quantity: intPtr(3),
	})
	require.NoError(t, err)

	list := c.ListInventory()
	require.Len(t, list, 6)
	assert.Equal(t, item.ID, list[0].ID)
	assert.Equal(t, models.DefaultInventoryCategory, list[0].Category)
	assert.Equal(t, "2024-06-01T08:00:00Z", list[0].LastUpdated)
}

func TestUpdateInventory_MergesPartialFields(t *testing.T) {
	c, _ := newTestController(t)
	before, err := c.GetInventory("3")
	require.NoError(t, err)

	after, err := c.UpdateInventory(context.Background(), "3", models.InventoryPatch{Quantity: intPtr(7)})
	require.NoError(t, err)

	assert.Equal(t, 7, after.Quantity)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.MarketPrice, after.MarketPrice)
	assert.Equal(t, before.ProductURL, after.ProductURL)
	assert.Equal(t, "2024-06-01T08:00:00Z", after.LastUpdated)

	stored, err := c.GetInventory("3")
	require.NoError(t, err)
	assert.Equal(t, *after, *stored)
}

func TestUpdate_MissingIDChangesNothing(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	before := c.ListInventory()

	item, err := c.UpdateInventory(ctx, "nope", models.InventoryPatch{Quantity: intPtr(1)})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, c.ListInventory())
	assert.Empty(t, c.Notifications().List())

	_, err = c.UpdateMedia(ctx, "nope", models.MediaPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.UpdateChannel(ctx, "nope", models.ChannelPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.UpdatePlan(ctx, "nope", models.PlanPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	assert.False(t, c.DeleteMedia(ctx, "missing"))
	assert.Len(t, c.ListMedia(), 2)
	assert.Empty(t, c.Notifications().List())

	assert.True(t, c.DeleteMedia(ctx, "m1"))
	media := c.ListMedia()
	require.Len(t, media, 1)
	assert.Equal(t, "m2", media[0].ID)

	notes := c.Notifications().List()
	require.Len(t, notes, 1)
	assert.Equal(t, "媒体资源已删除", notes[0].Message)
}

func TestMutations_PersistWholeCollection(t *testing.T) {
	ctx := context.Background()
	c, s := newTestController(t)

	assert.True(t, c.DeleteInventory(ctx, "5"))

	saved := store.Load(ctx, s, store.KeyInventory, []models.InventoryItem{})
	assert.Len(t, saved, 4)
	assert.Equal(t, c.ListInventory(), saved)
}

func TestCreateMedia_RejectsInvertedContract(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.CreateMedia(context.Background(), models.MediaPatch{
		ContractStart: strPtr("2024-06-01"),
		ContractEnd:   strPtr("2024-01-01"),
	})

	assert.ErrorIs(t, err, models.ErrInvalidContractDates)
	assert.Len(t, c.ListMedia(), 2)
	assert.Empty(t, c.Notifications().List())
}

func TestNotificationOrdering(t *testing.T) {
	ctx := context.Background()
	tick := testNow
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	s := store.New(store.NewMemoryBackend(), "", nil)
	c := New(ctx, s, notify.NewLog(notify.WithClock(clock)), WithClock(func() time.Time { return testNow }))

	for i := 0; i < 3; i++ {
		_, err := c.CreateInventory(ctx, models.InventoryPatch{Name: strPtr(fmt.Sprintf("item-%d", i))})
		require.NoError(t, err)
	}

	notes := c.Notifications().List()
	require.Len(t, notes, 3)
	for _, n := range notes {
		assert.Equal(t, "成功", n.Title)
		assert.Equal(t, "库存信息已更新", n.Message)
		assert.Equal(t, models.NotificationSuccess, n.Type)
	}
	assert.True(t, notes[0].Timestamp.After(notes[1].Timestamp))
	assert.True(t, notes[1].Timestamp.After(notes[2].Timestamp))

	inv := c.ListInventory()
	assert.Equal(t, []string{"item-2", "item-1", "item-0"}, []string{inv[0].Name, inv[1].Name, inv[2].Name})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	c, s := newTestController(t)

	got := c.UpdateSettings(ctx, models.SettingsPatch{LowStockThreshold: intPtr(100)})

	assert.Equal(t, 100, got.LowStockThreshold)
	assert.Equal(t, 0, got.OutOfStockThreshold)
	assert.Equal(t, got, store.Load(ctx, s, store.KeySettings, models.DefaultSettings()))

	notes := c.Notifications().List()
	require.Len(t, notes, 1)
	assert.Equal(t, "设置已保存", notes[0].Title)
}

func TestPlans_CRUD(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	item := models.SeedInventory()[0]
	media := models.SeedMedia()[0]
	channel := models.SeedChannels()[0]

	plan, err := c.CreatePlan(ctx, models.PlanPatchFor(item, media, channel, 3000, 20))
	require.NoError(t, err)
	assert.Equal(t, models.PlanDraft, plan.Status)

	executed := models.PlanExecuted
	updated, err := c.UpdatePlan(ctx, plan.ID, models.PlanPatch{Status: &executed})
	require.NoError(t, err)
	assert.Equal(t, models.PlanExecuted, updated.Status)
	assert.Equal(t, 3000.0, updated.ChannelBid)

	assert.True(t, c.DeletePlan(ctx, plan.ID))
	assert.Empty(t, c.ListPlans())
}

func TestListReturnsCopies(t *testing.T) {
	c, _ := newTestController(t)

	list := c.ListChannels()
	list[0].Name = "changed"

	assert.NotEqual(t, "changed", c.ListChannels()[0].Name)
}
