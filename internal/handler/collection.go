package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/state"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

// collectionOps adapts one state port to the shared CRUD handlers.
type collectionOps[T, P any] struct {
	noun   string
	list   func() []T
	get    func(id string) (*T, error)
	create func(ctx context.Context, patch P) (*T, error)
	update func(ctx context.Context, id string, patch P) (*T, error)
	remove func(ctx context.Context, id string) bool
	// present decorates an entity for output; nil writes it as is.
	present func(T) any
}

// CollectionHandler serves list/get/create/update/delete for one collection.
type CollectionHandler[T, P any] struct {
	ops collectionOps[T, P]
}

func NewInventoryHandler(p state.InventoryPort) *CollectionHandler[models.InventoryItem, models.InventoryPatch] {
	return &CollectionHandler[models.InventoryItem, models.InventoryPatch]{ops: collectionOps[models.InventoryItem, models.InventoryPatch]{
		noun: "Inventory item", list: p.ListInventory, get: p.GetInventory,
		create: p.CreateInventory, update: p.UpdateInventory, remove: p.DeleteInventory,
		present: func(item models.InventoryItem) any { return p.InventoryView(item) },
	}}
}

func NewMediaHandler(p state.MediaPort) *CollectionHandler[models.MediaResource, models.MediaPatch] {
	return &CollectionHandler[models.MediaResource, models.MediaPatch]{ops: collectionOps[models.MediaResource, models.MediaPatch]{
		noun: "Media resource", list: p.ListMedia, get: p.GetMedia,
		create: p.CreateMedia, update: p.UpdateMedia, remove: p.DeleteMedia,
		present: func(m models.MediaResource) any { return p.MediaView(m) },
	}}
}

func NewChannelHandler(p state.ChannelPort) *CollectionHandler[models.SalesChannel, models.ChannelPatch] {
	return &CollectionHandler[models.SalesChannel, models.ChannelPatch]{ops: collectionOps[models.SalesChannel, models.ChannelPatch]{
		noun: "Sales channel", list: p.ListChannels, get: p.GetChannel,
		create: p.CreateChannel, update: p.UpdateChannel, remove: p.DeleteChannel,
	}}
}

func NewPlanHandler(p state.PlanPort) *CollectionHandler[models.PricingPlan, models.PlanPatch] {
	return &CollectionHandler[models.PricingPlan, models.PlanPatch]{ops: collectionOps[models.PricingPlan, models.PlanPatch]{
		noun: "Pricing plan", list: p.ListPlans, get: p.GetPlan,
		create: p.CreatePlan, update: p.UpdatePlan, remove: p.DeletePlan,
	}}
}

// Register mounts the collection routes on rg.
func (h *CollectionHandler[T, P]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *CollectionHandler[T, P]) List(c *gin.Context) {
	items := h.ops.list()
	if h.ops.present == nil {
		utils.Success(c, http.StatusOK, h.ops.noun+" list retrieved", items)
		return
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = h.ops.present(item)
	}
	utils.Success(c, http.StatusOK, h.ops.noun+" list retrieved", out)
}

func (h *CollectionHandler[T, P]) Get(c *gin.Context) {
	item, err := h.ops.get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, h.ops.noun+" retrieved", h.view(item))
}

func (h *CollectionHandler[T, P]) Create(c *gin.Context) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BindError(c, err)
		return
	}

	item, err := h.ops.create(c.Request.Context(), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, h.ops.noun+" created", h.view(item))
}

func (h *CollectionHandler[T, P]) Update(c *gin.Context) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BindError(c, err)
		return
	}

	item, err := h.ops.update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, h.ops.noun+" updated", h.view(item))
}

// Delete of an unknown id is not an error; the response says deleted=false.
func (h *CollectionHandler[T, P]) Delete(c *gin.Context) {
	deleted := h.ops.remove(c.Request.Context(), c.Param("id"))
	utils.Success(c, http.StatusOK, h.ops.noun+" delete processed", gin.H{"deleted": deleted})
}

func (h *CollectionHandler[T, P]) view(item *T) any {
	if h.ops.present == nil {
		return item
	}
	return h.ops.present(*item)
}

func (h *CollectionHandler[T, P]) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, state.ErrNotFound):
		utils.Error(c, http.StatusNotFound, utils.CodeNotFound, h.ops.noun+" not found")
	case errors.Is(err, models.ErrInvalidContractDates):
		utils.Error(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
	default:
		utils.Error(c, http.StatusInternalServerError, utils.CodeInternal, "Internal server error")
	}
}
