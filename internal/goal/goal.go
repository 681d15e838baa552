// Package goal computes savings and investment goal feasibility from a
// recovered pay-record snapshot. Current progress is inferred from income
// heuristics (a fixed 30% of net income), not tracked actual savings.
package goal

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/predict"
	"github.com/payvista/finhealth/internal/stats"
)

// savingsFraction is the share of net income assumed to be saveable each
// month, and also the share assumed already saved.
const savingsFraction = 0.30

// Definition is a caller-supplied goal (home purchase, education) with an
// explicit target. Built-in goals (emergency fund, retirement) are derived
// from the records and need no definition.
type Definition struct {
	Type         model.GoalType `json:"type" yaml:"type"`
	Name         string         `json:"name" yaml:"name"`
	TargetAmount float64        `json:"target_amount" yaml:"target_amount"`
	TargetDate   time.Time      `json:"target_date" yaml:"target_date"`
}

// Analyzer computes goal feasibility. The clock is injectable for tests.
type Analyzer struct {
	cfg config.GoalConfig
	now func() time.Time
}

// New creates an Analyzer. Zero-valued config fields fall back to defaults.
func New(cfg config.GoalConfig) *Analyzer {
	if cfg.EmergencyFundMonths <= 0 {
		cfg.EmergencyFundMonths = 6
	}
	if cfg.EmergencyFundCeilingMonths <= 0 {
		cfg.EmergencyFundCeilingMonths = 18
	}
	if cfg.HomeCeilingMonths <= 0 {
		cfg.HomeCeilingMonths = 60
	}
	if cfg.EducationCeilingMonths <= 0 {
		cfg.EducationCeilingMonths = 36
	}
	if cfg.RetirementGrowthRate <= 0 {
		cfg.RetirementGrowthRate = 0.08
	}
	if cfg.RetirementYears <= 0 {
		cfg.RetirementYears = 25
	}
	if cfg.RetirementTargetMultiple <= 0 {
		cfg.RetirementTargetMultiple = 10
	}
	return &Analyzer{cfg: cfg, now: time.Now}
}

// Analyze computes the built-in goals plus any caller-supplied definitions
// over a most-recent-first snapshot, ranked by priority.
func (a *Analyzer) Analyze(records []model.PayRecord, defs []Definition) []model.FinancialGoal {
	if len(records) == 0 {
		return nil
	}

	goals := []model.FinancialGoal{
		a.emergencyFund(records),
		a.retirement(records),
	}
	for _, def := range defs {
		goals = append(goals, a.defined(records, def))
	}

	Rank(goals)

	zap.L().Debug("goal: analysis complete",
		zap.Int("records", len(records)),
		zap.Int("goals", len(goals)),
	)

	return goals
}

// emergencyFund targets six months of essential expenses, where essentials
// are estimated at 70% of average net income.
func (a *Analyzer) emergencyFund(records []model.PayRecord) model.FinancialGoal {
	avgNet := averageNet(records)
	target := avgNet * 0.70 * float64(a.cfg.EmergencyFundMonths)
	current := savingsFraction * avgNet
	monthlySavings := savingsFraction * avgNet

	months, reachable := timeToGoal(target-current, monthlySavings)
	ceiling := a.cfg.EmergencyFundCeilingMonths

	g := model.FinancialGoal{
		Type:                           model.GoalEmergencyFund,
		Name:                           "Emergency Fund",
		TargetAmount:                   target,
		CurrentAmount:                  current,
		TargetDate:                     a.now().AddDate(0, ceiling, 0),
		Category:                       horizonCategory(ceiling),
		IsAchievable:                   reachable && months <= ceiling,
		RecommendedMonthlyContribution: monthlyContribution(target-current, ceiling),
	}
	if reachable {
		d := a.now().AddDate(0, months, 0)
		g.ProjectedAchievementDate = &d
	}
	return g
}

// retirement targets a fixed multiple of annual income; current progress is
// the future value of the present contribution level compounded over the
// configured horizon.
func (a *Analyzer) retirement(records []model.PayRecord) model.FinancialGoal {
	var totalGross, totalContribution float64
	for _, r := range records {
		totalGross += r.GrossIncome
		totalContribution += r.RetirementContribution
	}

	annualIncome := totalGross * (12 / float64(len(records)))
	annualContribution := totalContribution * (12 / float64(len(records)))

	target := annualIncome * a.cfg.RetirementTargetMultiple
	current := predict.FutureValue(annualContribution, a.cfg.RetirementGrowthRate, a.cfg.RetirementYears)
	contributionRate := stats.SafeRatio(totalContribution, totalGross)

	horizonMonths := a.cfg.RetirementYears * 12

	return model.FinancialGoal{
		Type:          model.GoalRetirement,
		Name:          "Retirement Corpus",
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    a.now().AddDate(a.cfg.RetirementYears, 0, 0),
		Category:      horizonCategory(horizonMonths),
		// Room remains to raise contributions while they stay under 10% of
		// income, so the goal counts as reachable.
		IsAchievable:                   contributionRate < 0.10,
		RecommendedMonthlyContribution: monthlyContribution(target-current, horizonMonths),
	}
}

// defined computes a caller-parameterized goal (home purchase, education, or
// any custom target).
func (a *Analyzer) defined(records []model.PayRecord, def Definition) model.FinancialGoal {
	avgNet := averageNet(records)
	current := savingsFraction * avgNet
	monthlySavings := savingsFraction * avgNet

	ceiling := a.ceilingFor(def.Type)
	horizonMonths := ceiling
	targetDate := def.TargetDate
	if targetDate.IsZero() {
		targetDate = a.now().AddDate(0, ceiling, 0)
	} else if m := monthsUntil(a.now(), targetDate); m > 0 {
		horizonMonths = m
	}

	months, reachable := timeToGoal(def.TargetAmount-current, monthlySavings)

	g := model.FinancialGoal{
		Type:                           def.Type,
		Name:                           def.Name,
		TargetAmount:                   def.TargetAmount,
		CurrentAmount:                  current,
		TargetDate:                     targetDate,
		Category:                       horizonCategory(ceiling),
		IsAchievable:                   reachable && months <= ceiling,
		RecommendedMonthlyContribution: monthlyContribution(def.TargetAmount-current, horizonMonths),
	}
	if reachable {
		d := a.now().AddDate(0, months, 0)
		g.ProjectedAchievementDate = &d
	}
	return g
}

// ceilingFor maps a goal type to its achievability horizon in months.
func (a *Analyzer) ceilingFor(typ model.GoalType) int {
	switch typ {
	case model.GoalEmergencyFund:
		return a.cfg.EmergencyFundCeilingMonths
	case model.GoalEducation:
		return a.cfg.EducationCeilingMonths
	case model.GoalMajorPurchase:
		return a.cfg.HomeCeilingMonths
	default:
		return a.cfg.HomeCeilingMonths
	}
}

// priority orders goal types for ranking; lower ranks first.
var priority = map[model.GoalType]int{
	model.GoalEmergencyFund: 0,
	model.GoalEducation:     1,
	model.GoalMajorPurchase: 2,
	model.GoalRetirement:    3,
	model.GoalSavings:       4,
	model.GoalInvestment:    5,
	model.GoalDebtPayoff:    6,
}

// Rank sorts goals in place: type priority, then achievable before not,
// then earliest target date.
func Rank(goals []model.FinancialGoal) {
	sort.SliceStable(goals, func(i, j int) bool {
		pi, pj := priority[goals[i].Type], priority[goals[j].Type]
		if pi != pj {
			return pi < pj
		}
		if goals[i].IsAchievable != goals[j].IsAchievable {
			return goals[i].IsAchievable
		}
		return goals[i].TargetDate.Before(goals[j].TargetDate)
	})
}

// timeToGoal returns ceil(remaining/monthlySavings) in months. ok is false
// when monthly savings are not positive; a non-positive remainder means the
// goal is already met.
func timeToGoal(remaining, monthlySavings float64) (int, bool) {
	if remaining <= 0 {
		return 0, true
	}
	if monthlySavings <= 0 {
		return 0, false
	}
	return int(math.Ceil(remaining / monthlySavings)), true
}

// monthlyContribution spreads the remaining amount over the horizon.
func monthlyContribution(remaining float64, horizonMonths int) float64 {
	if remaining <= 0 || horizonMonths <= 0 {
		return 0
	}
	return remaining / float64(horizonMonths)
}

// horizonCategory buckets a horizon in months into a goal category.
func horizonCategory(months int) model.GoalCategory {
	switch {
	case months <= 18:
		return model.GoalShortTerm
	case months <= 60:
		return model.GoalMediumTerm
	default:
		return model.GoalLongTerm
	}
}

// monthsUntil returns whole months from now until t, rounded up, or 0 when t
// is not in the future.
func monthsUntil(now, t time.Time) int {
	if !t.After(now) {
		return 0
	}
	months := 0
	cursor := now
	for !cursor.AddDate(0, 1, 0).After(t) {
		cursor = cursor.AddDate(0, 1, 0)
		months++
	}
	if cursor.Before(t) {
		months++
	}
	return months
}

func averageNet(records []model.PayRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += r.NetIncome()
	}
	return total / float64(len(records))
}
