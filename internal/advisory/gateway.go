package advisory

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/pkg/gemini"
)

// Operation names used in errors, logs and metrics.
const (
	OpPricingAnalysis     = "pricing_analysis"
	OpRiskAssessment      = "risk_assessment"
	OpPricingOptimization = "pricing_optimization"
	OpFinancialSimulation = "financial_simulation"
	OpProductResearch     = "product_research"
)

const outcomeError = "error"

// Generator is the external text-generation service.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	GenerateGrounded(ctx context.Context, prompt string) (*gemini.GroundedText, error)
}

// Gateway turns domain entities into prompts, calls the generator and
// validates its answers.
//
// The four schema-constrained operations always return a result: the model
// answer, or deterministic fallback content tagged with its source. The
// error is non-nil only when the service was configured but failed, so
// callers may show the fallback or surface the failure. Research has no
// fallback and returns either a result or an error.
type Gateway struct {
	gen     Generator
	breaker *Breaker
	metrics *metrics.Metrics

	pricing    *responseSpec
	risk       *responseSpec
	strategy   *responseSpec
	simulation *responseSpec
}

type Option func(*Gateway)

func WithBreaker(b *Breaker) Option {
	return func(g *Gateway) { g.breaker = b }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// New builds a gateway. A nil generator means no credential is configured:
// every operation answers offline without any network call.
func New(gen Generator, opts ...Option) (*Gateway, error) {
	g := &Gateway{gen: gen}
	for _, opt := range opts {
		opt(g)
	}
	if g.breaker == nil {
		g.breaker = NewBreaker(DefaultBreakerConfig(), g.metrics)
	}

	specs := []struct {
		dst    **responseSpec
		name   string
		schema *genai.Schema
	}{
		{&g.pricing, OpPricingAnalysis, pricingAnalysisSchema},
		{&g.risk, OpRiskAssessment, riskAssessmentSchema},
		{&g.strategy, OpPricingOptimization, pricingStrategySchema},
		{&g.simulation, OpFinancialSimulation, financialSimulationSchema},
	}
	for _, s := range specs {
		compiled, err := compileSpec(s.name, s.schema)
		if err != nil {
			return nil, err
		}
		*s.dst = compiled
	}

	return g, nil
}

// Configured reports whether an AI credential is present.
func (g *Gateway) Configured() bool {
	return g.gen != nil
}

func (g *Gateway) AnalyzePricing(ctx context.Context, item models.InventoryItem) (*models.PricingAnalysis, error) {
	if g.gen == nil {
		g.record(OpPricingAnalysis, models.SourceOffline)
		return offlinePricingAnalysis(item), nil
	}

	var out models.PricingAnalysis
	if err := g.generate(ctx, OpPricingAnalysis, pricingAnalysisPrompt(item), g.pricing, &out); err != nil {
		g.record(OpPricingAnalysis, models.SourceFallback)
		return failedPricingAnalysis(item), err
	}
	if out.Reasoning == nil {
		out.Reasoning = []string{}
	}
	out.Source = models.SourceModel
	g.record(OpPricingAnalysis, models.SourceModel)
	return &out, nil
}

// AssessRisk evaluates liquidity and channel-dependency risk for the portfolio totals.
func (g *Gateway) AssessRisk(ctx context.Context, inventoryValue, mediaValuation float64, channelCount int) (*models.RiskAssessment, error) {
	if g.gen == nil {
		g.record(OpRiskAssessment, models.SourceOffline)
		return offlineRiskAssessment(), nil
	}

	var out models.RiskAssessment
	prompt := riskAssessmentPrompt(inventoryValue, mediaValuation, channelCount)
	if err := g.generate(ctx, OpRiskAssessment, prompt, g.risk, &out); err != nil {
		g.record(OpRiskAssessment, models.SourceFallback)
		return failedRiskAssessment(), err
	}
	if out.Reasoning == nil {
		out.Reasoning = []string{}
	}
	out.Source = models.SourceModel
	g.record(OpRiskAssessment, models.SourceModel)
	return &out, nil
}

func (g *Gateway) OptimizePricing(ctx context.Context, item models.InventoryItem, media models.MediaResource, channel models.SalesChannel) (*models.PricingStrategy, error) {
	if g.gen == nil {
		g.record(OpPricingOptimization, models.SourceOffline)
		return offlinePricingStrategy(item), nil
	}

	var out models.PricingStrategy
	prompt := pricingStrategyPrompt(item, media, channel)
	if err := g.generate(ctx, OpPricingOptimization, prompt, g.strategy, &out); err != nil {
		g.record(OpPricingOptimization, models.SourceFallback)
		return failedPricingStrategy(item), err
	}
	out.Source = models.SourceModel
	g.record(OpPricingOptimization, models.SourceModel)
	return &out, nil
}

func (g *Gateway) SimulateFinancials(ctx context.Context, item models.InventoryItem, media models.MediaResource, channel models.SalesChannel, in models.SimulationInputs) (*models.FinancialSimulation, error) {
	if g.gen == nil {
		g.record(OpFinancialSimulation, models.SourceOffline)
		return offlineSimulation(), nil
	}

	var out models.FinancialSimulation
	prompt := financialSimulationPrompt(item, media, channel, in)
	if err := g.generate(ctx, OpFinancialSimulation, prompt, g.simulation, &out); err != nil {
		g.record(OpFinancialSimulation, models.SourceFallback)
		return failedSimulation(), err
	}
	if out.Reasoning == nil {
		out.Reasoning = []string{}
	}
	out.Source = models.SourceModel
	g.record(OpFinancialSimulation, models.SourceModel)
	return &out, nil
}

// ResearchProduct runs a web-grounded market research for the item.
func (g *Gateway) ResearchProduct(ctx context.Context, item models.InventoryItem) (*models.ProductResearch, error) {
	if g.gen == nil {
		g.metrics.RecordAdvisory(OpProductResearch, outcomeError)
		return nil, &Error{Op: OpProductResearch, Kind: KindNotConfigured, Err: ErrNotConfigured}
	}

	prompt := productResearchPrompt(item)
	answer, err := run(g.breaker, func() (*gemini.GroundedText, error) {
		return g.gen.GenerateGrounded(ctx, prompt)
	})
	if err != nil {
		log.Error().Err(err).Str("op", OpProductResearch).Str("item_id", item.ID).Msg("AI request failed")
		g.metrics.RecordAdvisory(OpProductResearch, outcomeError)
		return nil, &Error{Op: OpProductResearch, Kind: KindTransport, Err: err}
	}
	if answer == nil {
		answer = &gemini.GroundedText{}
	}

	g.record(OpProductResearch, models.SourceModel)
	return buildResearch(answer), nil
}

// generate calls the model through the breaker and decodes a validated answer into out.
func (g *Gateway) generate(ctx context.Context, op, prompt string, spec *responseSpec, out any) error {
	text, err := run(g.breaker, func() (string, error) {
		return g.gen.GenerateJSON(ctx, prompt, spec.declared)
	})
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("AI request failed")
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}

	if err := spec.decode(text, out); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("AI response rejected")
		return &Error{Op: op, Kind: KindParse, Err: err}
	}
	return nil
}

func (g *Gateway) record(op string, source models.AdvisorySource) {
	g.metrics.RecordAdvisory(op, string(source))
}

// UserMessage is the text shown to dashboard users for a failed call.
// Transport details stay in the logs.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNotConfigured:
		return "未配置 AI 服务，请设置 GEMINI_API_KEY。"
	case KindParse:
		return "AI 返回的数据格式无效，请稍后重试。"
	case KindTransport:
		if errors.Is(err, ErrCircuitOpen) {
			return "AI 服务暂时不可用，请稍后重试。"
		}
		return "AI 无法获取该产品的信息，请稍后重试。"
	default:
		return "AI 服务异常，请稍后重试。"
	}
}
