package models

// AdvisorySource tells where an advisory result came from.
type AdvisorySource string

const (
	// SourceModel: the AI service answered and the answer validated.
	SourceModel AdvisorySource = "model"
	// SourceOffline: no AI credential is configured; deterministic content.
	SourceOffline AdvisorySource = "offline"
	// SourceFallback: the AI call or its parsing failed; deterministic content.
	SourceFallback AdvisorySource = "fallback"
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricingAnalysis is the advisory answer for a single inventory item.
type PricingAnalysis struct {
	Recommendation      string         `json:"recommendation"`
	Reasoning           []string       `json:"reasoning"`
	SuggestedPriceRange *PriceRange    `json:"suggestedPriceRange,omitempty"`
	RiskScore           float64        `json:"riskScore"`
	Source              AdvisorySource `json:"source"`
}

// RiskAssessment is the portfolio-level liquidity and channel risk answer.
type RiskAssessment struct {
	Recommendation string         `json:"recommendation"`
	Reasoning      []string       `json:"reasoning"`
	RiskScore      float64        `json:"riskScore"`
	Source         AdvisorySource `json:"source"`
}

// PricingStrategy is the suggested channel bid for an item/media/channel combination.
type PricingStrategy struct {
	SuggestedPrice float64        `json:"suggestedPrice"`
	PredictedROI   float64        `json:"predictedROI"`
	Reasoning      string         `json:"reasoning"`
	Source         AdvisorySource `json:"source"`
}

// SimulationInputs are the user-chosen parameters of a financial simulation.
type SimulationInputs struct {
	SellPrice float64 `json:"sellPrice" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"min=0"`
	MediaCost float64 `json:"mediaCost" binding:"min=0"`
}

type FinancialSimulation struct {
	Recommendation    string         `json:"recommendation"`
	Reasoning         []string       `json:"reasoning"`
	RiskScore         float64        `json:"riskScore"`
	StrategicFitScore float64        `json:"strategicFitScore"`
	Source            AdvisorySource `json:"source"`
}

// ResearchSource is a web citation backing a research answer.
type ResearchSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ProductResearch is the web-grounded market research for an item.
// Structured is false when the answer did not split into all expected
// sections; RawText then holds the full answer for display.
type ProductResearch struct {
	Summary              string           `json:"summary"`
	MarketAnalysis       []string         `json:"marketAnalysis"`
	CompetitorAnalysis   string           `json:"competitorAnalysis"`
	SuggestedPositioning string           `json:"suggestedPositioning"`
	Sources              []ResearchSource `json:"sources"`
	Structured           bool             `json:"structured"`
	RawText              string           `json:"rawText,omitempty"`
}
