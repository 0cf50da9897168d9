package advisory

import (
	"github.com/shopspring/decimal"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

// Deterministic content returned when the model cannot answer.

const (
	neutralScore = 50

	offlinePriceFactor = 0.6
	offlineROI         = 20
	failurePriceFactor = 0.7
	failureROI         = 15
)

func share(price, factor float64) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(factor)).InexactFloat64()
}

func priceBand(marketPrice float64) *models.PriceRange {
	return &models.PriceRange{Min: share(marketPrice, 0.8), Max: share(marketPrice, 0.95)}
}

func offlinePricingAnalysis(item models.InventoryItem) *models.PricingAnalysis {
	return &models.PricingAnalysis{
		Recommendation:      "未配置 API Key",
		Reasoning:           []string{"请配置有效的 Gemini API Key 以获取真实分析。"},
		SuggestedPriceRange: priceBand(item.MarketPrice),
		Source:              models.SourceOffline,
	}
}

func failedPricingAnalysis(item models.InventoryItem) *models.PricingAnalysis {
	return &models.PricingAnalysis{
		Recommendation:      "分析出错",
		Reasoning:           []string{"无法连接到 AI 服务。"},
		SuggestedPriceRange: priceBand(item.MarketPrice),
		RiskScore:           0,
		Source:              models.SourceFallback,
	}
}

func offlineRiskAssessment() *models.RiskAssessment {
	return &models.RiskAssessment{
		Recommendation: "无 API Key",
		Reasoning:      []string{},
		RiskScore:      0,
		Source:         models.SourceOffline,
	}
}

func failedRiskAssessment() *models.RiskAssessment {
	return &models.RiskAssessment{
		Recommendation: "评估出错",
		Reasoning:      []string{},
		RiskScore:      neutralScore,
		Source:         models.SourceFallback,
	}
}

func offlinePricingStrategy(item models.InventoryItem) *models.PricingStrategy {
	return &models.PricingStrategy{
		SuggestedPrice: share(item.MarketPrice, offlinePriceFactor),
		PredictedROI:   offlineROI,
		Reasoning:      "AI Key缺失。根据市场价60%估算。",
		Source:         models.SourceOffline,
	}
}

func failedPricingStrategy(item models.InventoryItem) *models.PricingStrategy {
	return &models.PricingStrategy{
		SuggestedPrice: share(item.MarketPrice, failurePriceFactor),
		PredictedROI:   failureROI,
		Reasoning:      "分析异常，建议参考历史定价。",
		Source:         models.SourceFallback,
	}
}

func offlineSimulation() *models.FinancialSimulation {
	return &models.FinancialSimulation{
		Recommendation:    "无 API 密钥",
		Reasoning:         []string{"请检查设置"},
		RiskScore:         neutralScore,
		StrategicFitScore: neutralScore,
		Source:            models.SourceOffline,
	}
}

func failedSimulation() *models.FinancialSimulation {
	return &models.FinancialSimulation{
		Recommendation:    "模拟分析失败",
		Reasoning:         []string{"网络超时"},
		RiskScore:         neutralScore,
		StrategicFitScore: neutralScore,
		Source:            models.SourceFallback,
	}
}
