package category

import "github.com/payvista/finhealth/internal/model"

// recommendation returns the advisory line for a category at a given status.
// The mapping is fixed; no randomness or templating.
func recommendation(id model.CategoryID, status model.CategoryStatus) string {
	if texts, ok := recommendations[id]; ok {
		if text, ok := texts[status]; ok {
			return text
		}
	}
	return ""
}

var recommendations = map[model.CategoryID]map[model.CategoryStatus]string{
	model.CategoryIncomeStability: {
		model.StatusExcellent: "Income is very steady. Keep your current income sources.",
		model.StatusGood:      "Income is mostly steady with minor fluctuation.",
		model.StatusFair:      "Income varies noticeably. Build a buffer for lean months.",
		model.StatusPoor:      "Income is highly volatile. Prioritize an emergency buffer and look for steadier income sources.",
	},
	model.CategorySavingsRate: {
		model.StatusExcellent: "Savings rate is strong. Consider channeling surplus into investments.",
		model.StatusGood:      "Savings rate is healthy. A small increase would move you to excellent.",
		model.StatusFair:      "Savings rate is thin. Review recurring expenses for cuts.",
		model.StatusPoor:      "Very little is being saved. Start with a fixed monthly transfer, however small.",
	},
	model.CategoryDeductionEfficiency: {
		model.StatusExcellent: "Deductions take a small share of income. No action needed.",
		model.StatusGood:      "Deductions are reasonable. Check for unused optional deductions.",
		model.StatusFair:      "Deductions take a large share of income. Audit each line item.",
		model.StatusPoor:      "Deductions are consuming most of your income. Review tax declarations and optional contributions urgently.",
	},
	model.CategoryIncomeGrowth: {
		model.StatusExcellent: "Income is growing strongly. Lock in the gains by raising your savings rate.",
		model.StatusGood:      "Income is growing steadily.",
		model.StatusFair:      "Income growth is flat to modest. Consider skill investment or a compensation review.",
		model.StatusPoor:      "Income is not growing. Plan a compensation discussion or explore alternatives.",
	},
	model.CategoryRisk: {
		model.StatusExcellent: "Financial risk profile is low.",
		model.StatusGood:      "Risk profile is manageable.",
		model.StatusFair:      "Elevated risk from volatility or deduction load. Address the weaker of the two.",
		model.StatusPoor:      "High financial risk. Stabilize income and reduce deduction load before taking on new commitments.",
	},
}

// actionItems returns the 0-2 deterministic follow-ups for a category at a
// given status. Excellent buckets usually carry none.
func actionItems(id model.CategoryID, status model.CategoryStatus) []model.ActionItem {
	key := bucketKey{id, status}
	items := actionCatalog[key]
	if len(items) == 0 {
		return nil
	}
	// Copy so callers cannot mutate the catalog.
	out := make([]model.ActionItem, len(items))
	copy(out, items)
	return out
}

type bucketKey struct {
	id     model.CategoryID
	status model.CategoryStatus
}

var actionCatalog = map[bucketKey][]model.ActionItem{
	{model.CategoryIncomeStability, model.StatusFair}: {
		{
			Title:           "Build a one-month buffer",
			Description:     "Set aside one month of expenses to absorb income dips.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryIncomeStability,
			EstimatedImpact: "Covers a single lean month",
			Timeframe:       "3 months",
		},
	},
	{model.CategoryIncomeStability, model.StatusPoor}: {
		{
			Title:           "Build a three-month buffer",
			Description:     "Volatile income needs a deeper cushion before anything else.",
			Priority:        model.PriorityHigh,
			Category:        model.CategoryIncomeStability,
			EstimatedImpact: "Covers a quarter of lean income",
			Timeframe:       "6 months",
		},
		{
			Title:           "Diversify income sources",
			Description:     "Add a second income stream to smooth out swings.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryIncomeStability,
			EstimatedImpact: "Reduces volatility exposure",
			Timeframe:       "6-12 months",
		},
	},
	{model.CategorySavingsRate, model.StatusGood}: {
		{
			Title:           "Raise automatic savings by 5%",
			Description:     "A small standing-instruction increase moves the rate into the top band.",
			Priority:        model.PriorityLow,
			Category:        model.CategorySavingsRate,
			EstimatedImpact: "+5% savings rate",
			Timeframe:       "1 month",
		},
	},
	{model.CategorySavingsRate, model.StatusFair}: {
		{
			Title:           "Automate a fixed monthly transfer",
			Description:     "Move savings out on payday before discretionary spending.",
			Priority:        model.PriorityMedium,
			Category:        model.CategorySavingsRate,
			EstimatedImpact: "+10% savings rate",
			Timeframe:       "1 month",
		},
	},
	{model.CategorySavingsRate, model.StatusPoor}: {
		{
			Title:           "Start a minimal standing instruction",
			Description:     "Even a small fixed transfer establishes the habit and a base.",
			Priority:        model.PriorityHigh,
			Category:        model.CategorySavingsRate,
			EstimatedImpact: "Establishes a savings base",
			Timeframe:       "immediate",
		},
		{
			Title:           "Run a 30-day expense audit",
			Description:     "Identify the three largest recurring expenses and cut one.",
			Priority:        model.PriorityMedium,
			Category:        model.CategorySavingsRate,
			EstimatedImpact: "Frees 5-10% of income",
			Timeframe:       "1 month",
		},
	},
	{model.CategoryDeductionEfficiency, model.StatusFair}: {
		{
			Title:           "Audit deduction line items",
			Description:     "Check each payslip deduction for unused or duplicate items.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryDeductionEfficiency,
			EstimatedImpact: "Recovers 2-5% of gross",
			Timeframe:       "1 month",
		},
	},
	{model.CategoryDeductionEfficiency, model.StatusPoor}: {
		{
			Title:           "Review tax declarations",
			Description:     "Verify exemptions and regime choice; over-withholding is common.",
			Priority:        model.PriorityHigh,
			Category:        model.CategoryDeductionEfficiency,
			EstimatedImpact: "Recovers 5-10% of gross",
			Timeframe:       "next filing cycle",
		},
		{
			Title:           "Renegotiate optional deductions",
			Description:     "Pause or reduce elective contributions until the ratio recovers.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryDeductionEfficiency,
			EstimatedImpact: "Frees monthly cash flow",
			Timeframe:       "1 month",
		},
	},
	{model.CategoryIncomeGrowth, model.StatusFair}: {
		{
			Title:           "Schedule a compensation review",
			Description:     "Flat income over six months warrants a structured pay discussion.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryIncomeGrowth,
			EstimatedImpact: "Potential 5-10% raise",
			Timeframe:       "3 months",
		},
	},
	{model.CategoryIncomeGrowth, model.StatusPoor}: {
		{
			Title:           "Plan a compensation discussion",
			Description:     "Document contributions and benchmark your role before negotiating.",
			Priority:        model.PriorityHigh,
			Category:        model.CategoryIncomeGrowth,
			EstimatedImpact: "Potential 10%+ raise",
			Timeframe:       "3 months",
		},
		{
			Title:           "Invest in a marketable skill",
			Description:     "Target a certification or skill with clear market demand.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryIncomeGrowth,
			EstimatedImpact: "Long-term earning power",
			Timeframe:       "6-12 months",
		},
	},
	{model.CategoryRisk, model.StatusFair}: {
		{
			Title:           "Address the dominant risk factor",
			Description:     "Reduce either income volatility or deduction load, whichever scores worse.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryRisk,
			EstimatedImpact: "Lowers composite risk",
			Timeframe:       "3 months",
		},
	},
	{model.CategoryRisk, model.StatusPoor}: {
		{
			Title:           "Freeze new financial commitments",
			Description:     "Avoid new loans or fixed obligations until risk falls.",
			Priority:        model.PriorityHigh,
			Category:        model.CategoryRisk,
			EstimatedImpact: "Prevents compounding risk",
			Timeframe:       "immediate",
		},
		{
			Title:           "Stabilize income and deductions",
			Description:     "Work the stability and deduction actions first; risk follows both.",
			Priority:        model.PriorityMedium,
			Category:        model.CategoryRisk,
			EstimatedImpact: "Lowers composite risk",
			Timeframe:       "6 months",
		},
	},
}
