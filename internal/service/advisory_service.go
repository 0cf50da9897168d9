package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/duckwolf_api/internal/advisory"
	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/state"
)

// Advisor is the AI advisory gateway as seen by the service layer.
type Advisor interface {
	Configured() bool
	AnalyzePricing(ctx context.Context, item models.InventoryItem) (*models.PricingAnalysis, error)
	AssessRisk(ctx context.Context, inventoryValue, mediaValuation float64, channelCount int) (*models.RiskAssessment, error)
	OptimizePricing(ctx context.Context, item models.InventoryItem, media models.MediaResource, channel models.SalesChannel) (*models.PricingStrategy, error)
	SimulateFinancials(ctx context.Context, item models.InventoryItem, media models.MediaResource, channel models.SalesChannel, in models.SimulationInputs) (*models.FinancialSimulation, error)
	ResearchProduct(ctx context.Context, item models.InventoryItem) (*models.ProductResearch, error)
}

var _ Advisor = (*advisory.Gateway)(nil)

// Workspace is the slice of the state controller the advisory service needs.
type Workspace interface {
	GetInventory(id string) (*models.InventoryItem, error)
	GetMedia(id string) (*models.MediaResource, error)
	GetChannel(id string) (*models.SalesChannel, error)
	CreatePlan(ctx context.Context, patch models.PlanPatch) (*models.PricingPlan, error)
	Summary() state.Summary
	Notify(title, message string, typ models.NotificationType) models.Notification
}

var _ Workspace = (*state.Controller)(nil)

// Combination names one inventory item, media resource and sales channel.
type Combination struct {
	InventoryID string `json:"inventoryId" binding:"required"`
	MediaID     string `json:"mediaId" binding:"required"`
	ChannelID   string `json:"channelId" binding:"required"`
}

type OptimizationResult struct {
	Strategy *models.PricingStrategy `json:"strategy"`
	Metrics  state.PricingMetrics    `json:"metrics"`
	Plan     *models.PricingPlan     `json:"plan,omitempty"`
}

type SimulationResult struct {
	Simulation *models.FinancialSimulation `json:"simulation"`
	Metrics    state.SimulationMetrics     `json:"metrics"`
}

// AdvisoryService resolves entity ids, calls the gateway and attaches the
// deterministic figures the dashboard shows next to each answer.
//
// Fallback answers are returned as content. Only research failures surface
// as errors, and they also append an error notification.
type AdvisoryService struct {
	workspace Workspace
	advisor   Advisor
}

func NewAdvisoryService(workspace Workspace, advisor Advisor) *AdvisoryService {
	return &AdvisoryService{workspace: workspace, advisor: advisor}
}

func (s *AdvisoryService) Configured() bool {
	return s.advisor.Configured()
}

func (s *AdvisoryService) AnalyzePricing(ctx context.Context, inventoryID string) (*models.PricingAnalysis, error) {
	item, err := s.workspace.GetInventory(inventoryID)
	if err != nil {
		return nil, err
	}
	res, err := s.advisor.AnalyzePricing(ctx, *item)
	logFallback(err)
	return res, nil
}

// AssessRisk evaluates the whole portfolio using the dashboard totals.
func (s *AdvisoryService) AssessRisk(ctx context.Context) (*models.RiskAssessment, error) {
	sum := s.workspace.Summary()
	res, err := s.advisor.AssessRisk(ctx, sum.TotalInventoryValue, sum.MediaValuation, sum.ChannelCount)
	logFallback(err)
	return res, nil
}

// OptimizePricing suggests a channel bid. With savePlan the suggestion is
// stored as a draft pricing plan.
func (s *AdvisoryService) OptimizePricing(ctx context.Context, combo Combination, savePlan bool) (*OptimizationResult, error) {
	item, media, channel, err := s.resolve(combo)
	if err != nil {
		return nil, err
	}

	strategy, err := s.advisor.OptimizePricing(ctx, *item, *media, *channel)
	logFallback(err)

	out := &OptimizationResult{
		Strategy: strategy,
		Metrics:  state.ComputePricingMetrics(*item, *channel, strategy.SuggestedPrice),
	}
	if savePlan {
		patch := models.PlanPatchFor(*item, *media, *channel, strategy.SuggestedPrice, strategy.PredictedROI)
		plan, err := s.workspace.CreatePlan(ctx, patch)
		if err != nil {
			return nil, err
		}
		out.Plan = plan
	}
	return out, nil
}

func (s *AdvisoryService) SimulateFinancials(ctx context.Context, combo Combination, in models.SimulationInputs) (*SimulationResult, error) {
	item, media, channel, err := s.resolve(combo)
	if err != nil {
		return nil, err
	}

	sim, err := s.advisor.SimulateFinancials(ctx, *item, *media, *channel, in)
	logFallback(err)

	return &SimulationResult{
		Simulation: sim,
		Metrics:    state.ComputeSimulationMetrics(*item, *channel, in),
	}, nil
}

// ResearchProduct has no fallback. A failure appends an error notification
// and is returned to the caller.
func (s *AdvisoryService) ResearchProduct(ctx context.Context, inventoryID string) (*models.ProductResearch, error) {
	item, err := s.workspace.GetInventory(inventoryID)
	if err != nil {
		return nil, err
	}

	res, err := s.advisor.ResearchProduct(ctx, *item)
	if err != nil {
		s.workspace.Notify("调研失败", advisory.UserMessage(err), models.NotificationError)
		return nil, err
	}
	return res, nil
}

func (s *AdvisoryService) resolve(combo Combination) (*models.InventoryItem, *models.MediaResource, *models.SalesChannel, error) {
	item, err := s.workspace.GetInventory(combo.InventoryID)
	if err != nil {
		return nil, nil, nil, err
	}
	media, err := s.workspace.GetMedia(combo.MediaID)
	if err != nil {
		return nil, nil, nil, err
	}
	channel, err := s.workspace.GetChannel(combo.ChannelID)
	if err != nil {
		return nil, nil, nil, err
	}
	return item, media, channel, nil
}

func logFallback(err error) {
	if err == nil {
		return
	}
	var aerr *advisory.Error
	if errors.As(err, &aerr) {
		log.Warn().Str("op", aerr.Op).Str("kind", string(aerr.Kind)).Msg("Serving fallback advisory content")
	}
}
