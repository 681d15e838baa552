package model

// InsightType identifies a predictive projection.
type InsightType string

const (
	InsightSalaryGrowth        InsightType = "salary_growth"
	InsightTaxProjection       InsightType = "tax_projection"
	InsightRetirementReadiness InsightType = "retirement_readiness"
)

// RiskLevel grades how risky an insight's underlying signal is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PredictiveInsight is one forward-looking projection derived from the pay
// history. Insights are independent; the list carries no ordering contract.
type PredictiveInsight struct {
	Type           InsightType `json:"type"`
	Confidence     float64     `json:"confidence"` // 0-1
	Timeframe      string      `json:"timeframe"`
	ExpectedValue  float64     `json:"expected_value"`
	Recommendation string      `json:"recommendation"`
	RiskLevel      RiskLevel   `json:"risk_level"`
}
