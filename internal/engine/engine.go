// Package engine coordinates a full analysis request: validation, recovery,
// concurrent fan-out over the independent analysis branches, and final
// assembly. The engine is stateless; construct one per use or share freely.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/payvista/finhealth/internal/benchmark"
	"github.com/payvista/finhealth/internal/category"
	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/goal"
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/predict"
	"github.com/payvista/finhealth/internal/validate"
)

// Engine runs financial-health analysis over pay-record snapshots.
type Engine struct {
	validator  *validate.Validator
	predictor  *predict.Analyzer
	benchmarks *benchmark.Analyzer
	goals      *goal.Analyzer
	minRecords int
	now        func() time.Time
}

// New assembles an Engine from configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{
		validator:  validate.New(cfg.Validation),
		predictor:  predict.New(),
		benchmarks: benchmark.New(cfg.Benchmarks),
		goals:      goal.New(cfg.Goals),
		minRecords: cfg.Validation.MinRecords,
		now:        time.Now,
	}
}

// Validate exposes the validator for callers that only need a validation
// report.
func (e *Engine) Validate(records []model.PayRecord) model.ValidationResult {
	return e.validator.Validate(records)
}

// Recover exposes the recovery filter.
func (e *Engine) Recover(records []model.PayRecord) []model.PayRecord {
	return e.validator.Recover(records)
}

// Analyze runs the full pipeline: validate, recover, fan out the four
// analysis branches over the same immutable snapshot, join all results, and
// assemble the composite. For any non-empty input the caller receives a
// well-formed result; the only error path is context cancellation.
func (e *Engine) Analyze(ctx context.Context, records []model.PayRecord, defs []goal.Definition) (*model.AnalysisResult, error) {
	result := &model.AnalysisResult{
		ID:     uuid.New().String(),
		Status: model.AnalysisValidating,
	}

	result.Validation = e.validator.Validate(records)
	if !result.Validation.CanProceed {
		e.fallback(result, len(records))
		return result, nil
	}

	snapshot := e.validator.Recover(records)
	if len(snapshot) < e.minRecords {
		e.fallback(result, len(snapshot))
		return result, nil
	}

	result.Status = model.AnalysisAnalyzing
	result.RecordsAnalyzed = len(snapshot)

	// The branches are mutually independent pure computations over the same
	// read-only snapshot. Each writes its own slot; the join below is the
	// only synchronization point, and nothing is surfaced until every branch
	// has returned.
	var (
		categories []model.HealthCategory
		trend      model.Trend
		insights   []model.PredictiveInsight
		benchmarks []model.BenchmarkData
		goals      []model.FinancialGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		categories = category.All(snapshot)
		trend = category.ComputeTrend(snapshot)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		insights = e.predictor.Analyze(snapshot)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		benchmarks = e.benchmarks.Analyze(snapshot)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		goals = e.goals.Analyze(snapshot, defs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "engine: analysis cancelled")
	}

	result.Status = model.AnalysisComplete
	result.HealthScore = model.FinancialHealthScore{
		OverallScore: category.Overall(categories),
		Categories:   categories,
		Trend:        trend,
		ComputedAt:   e.now(),
	}
	result.Insights = insights
	result.Benchmarks = benchmarks
	result.Goals = goals
	result.Recommendations = assembleRecommendations(categories, insights)

	zap.L().Info("engine: analysis complete",
		zap.String("analysis_id", result.ID),
		zap.Int("records", len(snapshot)),
		zap.Float64("overall_score", result.HealthScore.OverallScore),
		zap.String("trend", string(trend.Direction)),
	)

	return result, nil
}

// AnalyzeHealthScoreOnly runs validation, recovery, and the category branch.
func (e *Engine) AnalyzeHealthScoreOnly(records []model.PayRecord) model.FinancialHealthScore {
	snapshot, ok := e.usableSnapshot(records)
	if !ok {
		return e.fallbackScore()
	}

	categories := category.All(snapshot)
	return model.FinancialHealthScore{
		OverallScore: category.Overall(categories),
		Categories:   categories,
		Trend:        category.ComputeTrend(snapshot),
		ComputedAt:   e.now(),
	}
}

// AnalyzePredictiveOnly runs validation, recovery, and the predictive branch.
func (e *Engine) AnalyzePredictiveOnly(records []model.PayRecord) []model.PredictiveInsight {
	snapshot, ok := e.usableSnapshot(records)
	if !ok {
		return nil
	}
	return e.predictor.Analyze(snapshot)
}

// AnalyzeBenchmarksOnly runs validation, recovery, and the benchmark branch.
func (e *Engine) AnalyzeBenchmarksOnly(records []model.PayRecord) []model.BenchmarkData {
	snapshot, ok := e.usableSnapshot(records)
	if !ok {
		return nil
	}
	return e.benchmarks.Analyze(snapshot)
}

// AnalyzeGoalsOnly runs validation, recovery, and the goal branch.
func (e *Engine) AnalyzeGoalsOnly(records []model.PayRecord, defs []goal.Definition) []model.FinancialGoal {
	snapshot, ok := e.usableSnapshot(records)
	if !ok {
		return nil
	}
	return e.goals.Analyze(snapshot, defs)
}

// usableSnapshot validates and recovers the input, reporting whether enough
// records survive to analyze.
func (e *Engine) usableSnapshot(records []model.PayRecord) ([]model.PayRecord, bool) {
	if !e.validator.Validate(records).CanProceed {
		return nil, false
	}
	snapshot := e.validator.Recover(records)
	if len(snapshot) < e.minRecords {
		return nil, false
	}
	return snapshot, true
}

// insufficientDataRecommendation is the single generic recommendation on the
// fallback result.
const insufficientDataRecommendation = "Not enough pay records to analyze. Upload at least three months of payslips for a full assessment."

// fallback fills the fixed insufficient-data result: neutral score, no
// categories, stable trend.
func (e *Engine) fallback(result *model.AnalysisResult, recordCount int) {
	result.Status = model.AnalysisInsufficientData
	result.RecordsAnalyzed = recordCount
	result.HealthScore = e.fallbackScore()
	result.Recommendations = []string{insufficientDataRecommendation}

	zap.L().Info("engine: insufficient data for analysis",
		zap.String("analysis_id", result.ID),
		zap.Int("records", recordCount),
	)
}

func (e *Engine) fallbackScore() model.FinancialHealthScore {
	return model.FinancialHealthScore{
		OverallScore: 50,
		Categories:   nil,
		Trend:        model.Trend{Direction: model.TrendStable},
		ComputedAt:   e.now(),
	}
}

// assembleRecommendations lifts the advisory lines callers act on most: every
// non-excellent category's recommendation, then high-risk insight
// recommendations.
func assembleRecommendations(categories []model.HealthCategory, insights []model.PredictiveInsight) []string {
	var out []string
	for _, c := range categories {
		if c.Status != model.StatusExcellent && c.Recommendation != "" {
			out = append(out, c.Recommendation)
		}
	}
	for _, in := range insights {
		if in.RiskLevel == model.RiskHigh && in.Recommendation != "" {
			out = append(out, in.Recommendation)
		}
	}
	return out
}
