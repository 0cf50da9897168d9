package models

// AppSettings holds the advisory stock thresholds shown on the dashboard.
type AppSettings struct {
	LowStockThreshold   int `json:"lowStockThreshold" binding:"min=0"`
	OutOfStockThreshold int `json:"outOfStockThreshold" binding:"min=0"`
}

type SettingsPatch struct {
	LowStockThreshold   *int `json:"lowStockThreshold" binding:"omitempty,min=0"`
	OutOfStockThreshold *int `json:"outOfStockThreshold" binding:"omitempty,min=0"`
}

// DefaultSettings mirrors the out-of-the-box dashboard configuration.
func DefaultSettings() AppSettings {
	return AppSettings{LowStockThreshold: 50, OutOfStockThreshold: 0}
}

func (s *AppSettings) Apply(p SettingsPatch) {
	setIf(&s.LowStockThreshold, p.LowStockThreshold)
	setIf(&s.OutOfStockThreshold, p.OutOfStockThreshold)
}
