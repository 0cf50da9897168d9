package advisory

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/duckwolf_api/internal/models"
)

// formatNumber prints the shortest exact form of v ("4999", "0.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yuan(v float64) string {
	return "¥" + formatNumber(v)
}

// percent renders a rate in [0,1] as rate*100; places < 0 keeps all digits.
func percent(rate float64, places int32) string {
	p := decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100))
	if places >= 0 {
		return p.StringFixed(places)
	}
	return p.String()
}

func pricingAnalysisPrompt(item models.InventoryItem) string {
	return fmt.Sprintf(`分析以下通过广告易货获得的库存商品的定价策略：
产品名称: %s
品牌: %s
类别: %s
市场零售价: %s
实际成本 (广告抵扣): %s
当前库存: %d

请提供定价建议，以在保持品牌价值的同时最大化流动性。
请务必使用中文回答。
返回 JSON 格式。`,
		item.Name, item.Brand, item.Category, yuan(item.MarketPrice), yuan(item.CostPrice), item.Quantity)
}

func riskAssessmentPrompt(inventoryValue, mediaValuation float64, channelCount int) string {
	return fmt.Sprintf(`针对以下指标执行广告易货业务风险评估：
总库存价值: %s
媒体资源估值: %s
活跃销售渠道: %d

识别潜在的流动性风险和渠道依赖风险。
请务必使用中文回答。`,
		yuan(inventoryValue), yuan(mediaValuation), channelCount)
}

func pricingStrategyPrompt(item models.InventoryItem, media models.MediaResource, channel models.SalesChannel) string {
	return fmt.Sprintf(`你是一名广告易货定价专家。
目标：确定最佳销售价格（渠道出价），以快速清理库存并最大化ROI。

上下文：
- 产品: %s (%s, 品牌: %s)
- 市场零售价: %s
- 我们的沉没成本: %s
- 销售渠道: %s (佣金率: %s%%)
- 配合媒体: %s (%s)

任务：
1. 建议一个具体的最佳售价。
2. 计算预计 ROI。
3. 提供一句话的战略理由。

请务必使用中文回答。
返回 JSON 格式。`,
		item.Name, item.Category, item.Brand,
		yuan(item.MarketPrice), yuan(item.CostPrice),
		channel.Name, percent(channel.CommissionRate, 0),
		media.Name, media.Rate)
}

func financialSimulationPrompt(item models.InventoryItem, media models.MediaResource, channel models.SalesChannel, in models.SimulationInputs) string {
	return fmt.Sprintf(`针对以下销售活动执行财务测算和战略分析。

商品: %s (成本: %s)
媒体: %s (刊例: %s)
渠道: %s (佣金: %s%%)

测算参数:
- 预定售价: %s
- 目标销量: %d
- 媒体固定投入: %s

请分析此组合的战略契合度，并提供改进建议。
请务必使用中文回答。
返回 JSON。`,
		item.Name, yuan(item.CostPrice),
		media.Name, media.Rate,
		channel.Name, percent(channel.CommissionRate, -1),
		yuan(in.SellPrice), in.Quantity, yuan(in.MediaCost))
}

func productResearchPrompt(item models.InventoryItem) string {
	return fmt.Sprintf(`你是一名专业的产品市场调研专家。请通过网络搜索调研以下产品：
产品名称: %s
品牌: %s
类别: %s

请执行以下任务：
1. 查找该产品在主流电商平台（如京东、天猫、拼多多）的当前实际售价和用户评价。
2. 分析竞品情况及其价格点。
3. 评价该产品在当前市场的热度和生命周期阶段。
4. 给出针对易货渠道的定位建议。

请务必使用中文回答。`,
		item.Name, item.Brand, item.Category)
}
