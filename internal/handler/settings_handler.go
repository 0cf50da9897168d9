package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/state"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

type SettingsHandler struct {
	settings state.SettingsPort
}

func NewSettingsHandler(settings state.SettingsPort) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Settings retrieved", h.settings.Settings())
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BindError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Settings saved", h.settings.UpdateSettings(c.Request.Context(), patch))
}
