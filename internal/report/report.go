// Package report renders analysis results as human-readable text.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/payvista/finhealth/internal/model"
)

var printer = message.NewPrinter(language.English)

// amount formats a currency value with thousands separators.
func amount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatAnalysis generates a human-readable report for a full analysis result.
func FormatAnalysis(result *model.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Financial Health Report\n")
	fmt.Fprintf(&b, "Analysis ID: %s\n", result.ID)
	fmt.Fprintf(&b, "Status: %s\n", result.Status)
	fmt.Fprintf(&b, "Records analyzed: %d\n\n", result.RecordsAnalyzed)

	if result.Status == model.AnalysisInsufficientData {
		b.WriteString("Not enough pay records to analyze.\n")
		writeRecommendations(&b, result.Recommendations)
		writeValidation(&b, result.Validation)
		return b.String()
	}

	// Score.
	b.WriteString("## Overall Score\n")
	fmt.Fprintf(&b, "- Score: %.1f / 100\n", result.HealthScore.OverallScore)
	fmt.Fprintf(&b, "- Trend: %s", result.HealthScore.Trend.Direction)
	if result.HealthScore.Trend.Direction != model.TrendStable {
		fmt.Fprintf(&b, " (%.1f%%)", result.HealthScore.Trend.ChangePct)
	}
	b.WriteString("\n\n")

	// Categories.
	b.WriteString("## Categories\n")
	for _, c := range result.HealthScore.Categories {
		fmt.Fprintf(&b, "- **%s**: %.1f (%s, weight %.0f%%)\n",
			c.Name, c.Score, c.Status, c.Weight*100)
		if c.Recommendation != "" && c.Status != model.StatusExcellent {
			fmt.Fprintf(&b, "  %s\n", c.Recommendation)
		}
	}
	b.WriteString("\n")

	// Insights.
	if len(result.Insights) > 0 {
		b.WriteString("## Insights\n")
		for _, in := range result.Insights {
			fmt.Fprintf(&b, "- **%s** (%s): %s expected [risk: %s, confidence %.0f%%]\n",
				insightLabel(in.Type), in.Timeframe, amount(in.ExpectedValue),
				in.RiskLevel, in.Confidence*100)
			if in.Recommendation != "" {
				fmt.Fprintf(&b, "  %s\n", in.Recommendation)
			}
		}
		b.WriteString("\n")
	}

	// Benchmarks.
	if len(result.Benchmarks) > 0 {
		b.WriteString("## Benchmarks\n")
		for _, bm := range result.Benchmarks {
			fmt.Fprintf(&b, "- %s: %s vs %s benchmark (%s, %+.1f%%, percentile %.0f)\n",
				benchmarkLabel(bm.Category), amount(bm.UserValue), amount(bm.BenchmarkValue),
				comparisonLabel(bm.Comparison.Result), bm.Comparison.DeltaPct, bm.Percentile)
		}
		b.WriteString("\n")
	}

	// Goals.
	if len(result.Goals) > 0 {
		b.WriteString("## Goals\n")
		for _, g := range result.Goals {
			verdict := "achievable"
			if !g.IsAchievable {
				verdict = "at risk"
			}
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s of %s, %s\n",
				g.Name, g.Type, g.Category,
				amount(g.CurrentAmount), amount(g.TargetAmount), verdict)
			if g.RecommendedMonthlyContribution > 0 {
				fmt.Fprintf(&b, "  Recommended monthly contribution: %s\n",
					amount(g.RecommendedMonthlyContribution))
			}
			if g.ProjectedAchievementDate != nil {
				fmt.Fprintf(&b, "  Projected achievement: %s\n",
					g.ProjectedAchievementDate.Format("January 2006"))
			}
		}
		b.WriteString("\n")
	}

	writeRecommendations(&b, result.Recommendations)
	writeValidation(&b, result.Validation)

	return b.String()
}

// FormatValidation renders a standalone validation report.
func FormatValidation(v model.ValidationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Validation Report\n")
	verdict := "can proceed"
	if !v.CanProceed {
		verdict = "cannot proceed"
	}
	fmt.Fprintf(&b, "Result: %s (%d errors, %d warnings)\n\n",
		verdict, len(v.Errors), len(v.Warnings))
	writeIssues(&b, "Errors", v.Errors)
	writeIssues(&b, "Warnings", v.Warnings)
	return b.String()
}

func writeRecommendations(b *strings.Builder, recs []string) {
	if len(recs) == 0 {
		return
	}
	b.WriteString("## Recommendations\n")
	for _, r := range recs {
		fmt.Fprintf(b, "- %s\n", r)
	}
	b.WriteString("\n")
}

func writeValidation(b *strings.Builder, v model.ValidationResult) {
	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		return
	}
	b.WriteString("## Validation\n")
	writeIssues(b, "Errors", v.Errors)
	writeIssues(b, "Warnings", v.Warnings)
}

func writeIssues(b *strings.Builder, heading string, issues []model.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n", heading)
	for _, issue := range issues {
		if issue.RecordIndex >= 0 {
			fmt.Fprintf(b, "- [%s] record %d: %s\n", issue.Code, issue.RecordIndex, issue.Message)
		} else {
			fmt.Fprintf(b, "- [%s] %s\n", issue.Code, issue.Message)
		}
	}
	b.WriteString("\n")
}

func benchmarkLabel(c model.BenchmarkCategory) string {
	switch c {
	case model.BenchmarkAnnualSalary:
		return "Annual salary"
	case model.BenchmarkEffectiveTaxRate:
		return "Effective tax rate"
	case model.BenchmarkSavingsRate:
		return "Savings rate"
	case model.BenchmarkIncomeGrowth:
		return "Income growth"
	default:
		return string(c)
	}
}

func insightLabel(t model.InsightType) string {
	switch t {
	case model.InsightSalaryGrowth:
		return "Salary growth"
	case model.InsightTaxProjection:
		return "Tax projection"
	case model.InsightRetirementReadiness:
		return "Retirement readiness"
	default:
		return string(t)
	}
}

func comparisonLabel(r model.ComparisonResult) string {
	return strings.ReplaceAll(string(r), "_", " ")
}
