package model

// AnalysisStatus tracks a request through the coordinator's state machine.
type AnalysisStatus string

const (
	AnalysisIdle             AnalysisStatus = "idle"
	AnalysisValidating       AnalysisStatus = "validating"
	AnalysisInsufficientData AnalysisStatus = "insufficient_data"
	AnalysisAnalyzing        AnalysisStatus = "analyzing"
	AnalysisComplete         AnalysisStatus = "complete"
)

// AnalysisResult is the assembled output of a full analysis request. Results
// are recomputed per request from the input snapshot and never persisted.
type AnalysisResult struct {
	ID              string               `json:"id"`
	Status          AnalysisStatus       `json:"status"`
	Validation      ValidationResult     `json:"validation"`
	HealthScore     FinancialHealthScore `json:"health_score"`
	Insights        []PredictiveInsight  `json:"insights,omitempty"`
	Benchmarks      []BenchmarkData      `json:"benchmarks,omitempty"`
	Goals           []FinancialGoal      `json:"goals,omitempty"`
	Recommendations []string             `json:"recommendations,omitempty"`
	RecordsAnalyzed int                  `json:"records_analyzed"`
}
