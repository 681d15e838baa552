package model

import "time"

// GoalType identifies a savings or investment goal.
type GoalType string

const (
	GoalEmergencyFund GoalType = "emergency_fund"
	GoalEducation     GoalType = "education"
	GoalMajorPurchase GoalType = "major_purchase"
	GoalRetirement    GoalType = "retirement"
	GoalSavings       GoalType = "savings"
	GoalInvestment    GoalType = "investment"
	GoalDebtPayoff    GoalType = "debt_payoff"
)

// GoalCategory buckets goals by time horizon.
type GoalCategory string

const (
	GoalShortTerm  GoalCategory = "short_term"
	GoalMediumTerm GoalCategory = "medium_term"
	GoalLongTerm   GoalCategory = "long_term"
)

// FinancialGoal is a time-bounded savings or investment target with a
// feasibility verdict. CurrentAmount is a heuristic proxy (e.g. 30% of net
// income for the emergency fund), not tracked actual savings.
type FinancialGoal struct {
	Type                           GoalType     `json:"type"`
	Name                           string       `json:"name"`
	TargetAmount                   float64      `json:"target_amount"`
	CurrentAmount                  float64      `json:"current_amount"`
	TargetDate                     time.Time    `json:"target_date"`
	Category                       GoalCategory `json:"category"`
	IsAchievable                   bool         `json:"is_achievable"`
	RecommendedMonthlyContribution float64      `json:"recommended_monthly_contribution"`
	ProjectedAchievementDate       *time.Time   `json:"projected_achievement_date,omitempty"`
}
