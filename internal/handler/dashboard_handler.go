package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/state"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

// SnapshotPort exports and restores all collections at once.
type SnapshotPort interface {
	Summary() state.Summary
	Export() state.Snapshot
	Import(ctx context.Context, snap state.Snapshot) error
}

// DashboardHandler serves the summary cards and whole-workspace snapshots.
type DashboardHandler struct {
	workspace SnapshotPort
}

func NewDashboardHandler(workspace SnapshotPort) *DashboardHandler {
	return &DashboardHandler{workspace: workspace}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Dashboard summary retrieved", h.workspace.Summary())
}

func (h *DashboardHandler) ExportSnapshot(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Snapshot exported", h.workspace.Export())
}

func (h *DashboardHandler) ImportSnapshot(c *gin.Context) {
	var snap state.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.BindError(c, err)
		return
	}

	if err := h.workspace.Import(c.Request.Context(), snap); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.BindError(c, verrs)
			return
		}
		if errors.Is(err, state.ErrDuplicateID) || errors.Is(err, models.ErrInvalidContractDates) {
			utils.Error(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
			return
		}
		utils.Error(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to import snapshot")
		return
	}
	utils.Success(c, http.StatusOK, "Snapshot imported", h.workspace.Summary())
}
