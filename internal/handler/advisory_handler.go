package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/duckwolf_api/internal/advisory"
	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/service"
	"github.com/GTDGit/duckwolf_api/internal/state"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

// AdvisoryHandler exposes the AI advisory operations. Fallback content is
// returned with 200 and its source tag; only research can fail.
type AdvisoryHandler struct {
	svc *service.AdvisoryService
}

func NewAdvisoryHandler(svc *service.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{svc: svc}
}

func (h *AdvisoryHandler) AnalyzePricing(c *gin.Context) {
	res, err := h.svc.AnalyzePricing(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeLookupError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Pricing analysis completed", res)
}

func (h *AdvisoryHandler) AssessRisk(c *gin.Context) {
	res, err := h.svc.AssessRisk(c.Request.Context())
	if err != nil {
		writeLookupError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Risk assessment completed", res)
}

type optimizeRequest struct {
	service.Combination
	SavePlan bool `json:"savePlan"`
}

func (h *AdvisoryHandler) OptimizePricing(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	res, err := h.svc.OptimizePricing(c.Request.Context(), req.Combination, req.SavePlan)
	if err != nil {
		writeLookupError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Pricing optimization completed", res)
}

type simulateRequest struct {
	service.Combination
	Inputs models.SimulationInputs `json:"inputs"`
}

func (h *AdvisoryHandler) SimulateFinancials(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	res, err := h.svc.SimulateFinancials(c.Request.Context(), req.Combination, req.Inputs)
	if err != nil {
		writeLookupError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Financial simulation completed", res)
}

func (h *AdvisoryHandler) ResearchProduct(c *gin.Context) {
	res, err := h.svc.ResearchProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNotFound):
			writeLookupError(c, err)
		case advisory.KindOf(err) == advisory.KindNotConfigured:
			utils.Error(c, http.StatusServiceUnavailable, utils.CodeNotConfigured, advisory.UserMessage(err))
		default:
			utils.Error(c, http.StatusBadGateway, utils.CodeAdvisoryFailed, advisory.UserMessage(err))
		}
		return
	}
	utils.Success(c, http.StatusOK, "Product research completed", res)
}

func writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, state.ErrNotFound) {
		utils.Error(c, http.StatusNotFound, utils.CodeNotFound, "Referenced entity not found")
		return
	}
	utils.Error(c, http.StatusInternalServerError, utils.CodeInternal, "Internal server error")
}
