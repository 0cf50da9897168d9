package models

// Seed collections used when the store has nothing saved yet.

func ptr[T any](v T) *T { return &v }

func SeedInventory() []InventoryItem {
	return []InventoryItem{
		{ID: "1", Name: "讯飞X10语音文本笔", Brand: "科大讯飞", Category: "电子产品", Quantity: 1085, MarketPrice: 4999, LowestPrice: ptr(4299.0), CostPrice: 2000, ProductURL: ptr("https://www.jd.com"), Status: InventoryInStock, LastUpdated: "2023-10-25"},
		{ID: "2", Name: "科大讯飞 (样品) X3", Brand: "科大讯飞", Category: "家用电器", Quantity: 2788, MarketPrice: 1973, LowestPrice: ptr(1680.0), CostPrice: 800, ProductURL: ptr(""), Status: InventoryInStock, LastUpdated: "2023-10-24"},
		{ID: "3", Name: "读书郎学习机 P6", Brand: "读书郎", Category: "电子产品", Quantity: 1988, MarketPrice: 600, LowestPrice: ptr(499.0), CostPrice: 250, ProductURL: ptr("https://.taobao.com"), Status: InventoryInStock, LastUpdated: "2023-10-26"},
		{ID: "4", Name: "中老年补钙高蛋白", Brand: "诺崔特", Category: "保健品", Quantity: 526, MarketPrice: 4894, LowestPrice: ptr(3500.0), CostPrice: 1200, ProductURL: ptr(""), Status: InventoryLowStock, LastUpdated: "2023-10-20"},
		{ID: "5", Name: "燕京至简苏打水", Brand: "燕京", Category: "食品饮料", Quantity: 42, MarketPrice: 18775, LowestPrice: ptr(15000.0), CostPrice: 8000, ProductURL: ptr(""), Status: InventoryOutOfStock, LastUpdated: "2023-10-22"},
	}
}

func SeedMedia() []MediaResource {
	return []MediaResource{
		{ID: "m1", Name: "德高中国 (JCDecaux)", Type: "户外媒体", Format: "地铁媒体", Location: "全国主要城市地铁", Rate: "¥15,000/周", Discount: 0.68, ContractStart: "2023-05-01", ContractEnd: "2025-04-30", Status: MediaActive, Valuation: ptr(50000.0)},
		{ID: "m2", Name: "分众传媒 (Focus Media)", Type: "户外媒体", Format: "电梯楼宇广告", Location: "一线城市核心写字楼", Rate: "¥8,000/天", Discount: 0.75, ContractStart: "2023-01-01", ContractEnd: "2024-12-31", Status: MediaActive, Valuation: ptr(30000.0)},
	}
}

func SeedChannels() []SalesChannel {
	return []SalesChannel{
		{ID: "c1", Name: "1688 (阿里巴巴)", Type: ChannelOnline, SubType: "批发为主", Features: "最大尾货批发平台", ApplicableCategories: "全品类", Pros: "覆盖面广", CommissionRate: 0.05, ContactPerson: "Alice Wu", Status: ChannelActive},
		{ID: "c2", Name: "得物 (Poizon)", Type: ChannelOnline, SubType: "潮流电商", Features: "溢价能力强", ApplicableCategories: "鞋服/电子", Pros: "客单价高", CommissionRate: 0.12, ContactPerson: "Bob Chen", Status: ChannelActive},
	}
}
