package model

import "time"

// CategoryID identifies one of the five fixed health categories.
type CategoryID string

const (
	CategoryIncomeStability     CategoryID = "income_stability"
	CategorySavingsRate         CategoryID = "savings_rate"
	CategoryDeductionEfficiency CategoryID = "deduction_efficiency"
	CategoryIncomeGrowth        CategoryID = "income_growth"
	CategoryRisk                CategoryID = "risk_management"
)

// CategoryStatus is the qualitative band a category score falls into.
type CategoryStatus string

const (
	StatusExcellent CategoryStatus = "excellent"
	StatusGood      CategoryStatus = "good"
	StatusFair      CategoryStatus = "fair"
	StatusPoor      CategoryStatus = "poor"
)

// Priority ranks an action item's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionItem is a concrete, deterministic recommendation attached to a
// category. Each calculator emits at most two per analysis.
type ActionItem struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Priority        Priority   `json:"priority"`
	Category        CategoryID `json:"category"`
	EstimatedImpact string     `json:"estimated_impact"`
	Timeframe       string     `json:"timeframe"`
}

// HealthCategory is one scored dimension of financial health.
type HealthCategory struct {
	ID             CategoryID     `json:"id"`
	Name           string         `json:"name"`
	Score          float64        `json:"score"`  // 0-100
	Weight         float64        `json:"weight"` // (0,1], weights sum to 1.0
	Status         CategoryStatus `json:"status"`
	Recommendation string         `json:"recommendation"`
	ActionItems    []ActionItem   `json:"action_items,omitempty"`
}

// TrendDirection classifies short-horizon income movement.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// Trend holds the income trend classification. ChangePct is the absolute
// percentage change and is zero when the direction is stable.
type Trend struct {
	Direction TrendDirection `json:"direction"`
	ChangePct float64        `json:"change_pct,omitempty"`
}

// FinancialHealthScore is the composite assessment: five categories, their
// weighted overall score, and the income trend.
type FinancialHealthScore struct {
	OverallScore float64          `json:"overall_score"` // 0-100
	Categories   []HealthCategory `json:"categories"`
	Trend        Trend            `json:"trend"`
	ComputedAt   time.Time        `json:"computed_at"`
}
